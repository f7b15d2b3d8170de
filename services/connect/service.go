package connect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/MarcGrol/socialconnect/lib/myerrors"
	"github.com/MarcGrol/socialconnect/lib/mylog"
	"github.com/MarcGrol/socialconnect/lib/mypublisher"
	"github.com/MarcGrol/socialconnect/lib/mysession"
	"github.com/MarcGrol/socialconnect/lib/mytime"
	"github.com/MarcGrol/socialconnect/lib/myuuid"
	"github.com/MarcGrol/socialconnect/services/connect/connectevents"
	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/connections"
)

type service struct {
	locator          connectfactory.ConnectionFactoryLocator
	repo             connections.Repository
	sessionStore     mysession.SessionStore
	interceptors     *InterceptorRegistry
	customStrategies map[string]CustomAuthURLBuilder
	nower            mytime.Nower
	uuider           myuuid.UUIDer
	logger           mylog.Logger
	publisher        mypublisher.Publisher
}

func newService(locator connectfactory.ConnectionFactoryLocator, repo connections.Repository, sessionStore mysession.SessionStore, interceptors *InterceptorRegistry, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *service {
	return &service{
		locator:          locator,
		repo:             repo,
		sessionStore:     sessionStore,
		interceptors:     interceptors,
		customStrategies: map[string]CustomAuthURLBuilder{},
		nower:            nower,
		uuider:           uuider,
		logger:           mylog.New("connect"),
		publisher:        pub,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, connectevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", connectevents.TopicName, err)
	}

	return nil
}

func (s *service) registerCustomStrategy(providerID string, builder CustomAuthURLBuilder) {
	s.customStrategies[providerID] = builder
}

func (s *service) connectionStatus(c context.Context, sessionUID string, providerID string) (StatusPage, error) {
	s.logger.Log(c, providerID, mylog.SeverityInfo, "Show connection status with provider %s for session %s", providerID, sessionUID)

	showDuplicateNotice := false
	flag, exists, err := s.sessionStore.Get(c, sessionUID, duplicateFlagSessionKey)
	if err != nil {
		return StatusPage{}, myerrors.NewInternalError(fmt.Errorf("error reading session: %s", err))
	}
	if exists {
		showDuplicateNotice = flag == "true"
		err = s.sessionStore.Remove(c, sessionUID, duplicateFlagSessionKey)
		if err != nil {
			return StatusPage{}, myerrors.NewInternalError(fmt.Errorf("error clearing session: %s", err))
		}
	}

	conns, err := s.repo.FindConnections(c, sessionUID, providerID)
	if err != nil {
		return StatusPage{}, myerrors.NewInternalError(fmt.Errorf("error fetching connections: %s", err))
	}

	return StatusPage{
		ProviderID:          providerID,
		Connections:         conns,
		ShowDuplicateNotice: showDuplicateNotice,
	}, nil
}

func (s *service) startConnect(c context.Context, sessionUID string, providerID string, scope string, params url.Values, hostname string) (string, error) {
	s.logger.Log(c, providerID, mylog.SeverityInfo, "Start connect flow with provider %s for session %s", providerID, sessionUID)

	factory, err := s.locator.Lookup(providerID)
	if err != nil {
		return "", myerrors.NewNotFoundError(err)
	}

	requestContext := RequestContext{
		SessionUID: sessionUID,
		Params:     params,
	}
	for _, interceptor := range s.interceptors.InterceptorsFor(factory) {
		interceptor.PreConnect(c, factory, requestContext)
	}

	callbackURL := createCallbackURL(hostname, providerID)

	var authorizeURL string
	switch factory := factory.(type) {
	case *connectfactory.OAuth1ConnectionFactory:
		authorizeURL, err = s.buildOAuth1AuthorizeURL(c, sessionUID, factory, callbackURL)
	case *connectfactory.OAuth2ConnectionFactory:
		authorizeURL, err = s.buildOAuth2AuthorizeURL(c, factory, callbackURL, scope)
	default:
		authorizeURL, err = s.buildCustomAuthorizeURL(c, factory, callbackURL, requestContext)
	}
	if err != nil {
		return "", err
	}

	err = s.publisher.Publish(c, connectevents.TopicName, connectevents.ConnectStarted{
		ProviderID: providerID,
		SessionUID: sessionUID,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	return authorizeURL, nil
}

func (s *service) buildOAuth1AuthorizeURL(c context.Context, sessionUID string, factory *connectfactory.OAuth1ConnectionFactory, callbackURL string) (string, error) {
	operations := factory.OAuthOperations()

	fetchCallbackURL := callbackURL
	authorizeParams := url.Values{}
	if operations.Version() != connectfactory.OAuth1VersionCore10a {
		// pre-1.0a providers receive the callback as an authorize parameter
		fetchCallbackURL = ""
		authorizeParams.Set("oauth_callback", callbackURL)
	}

	requestToken, err := operations.FetchRequestToken(c, fetchCallbackURL)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error fetching request-token at provider %s: %s", factory.ProviderID(), err))
	}

	err = s.cacheRequestToken(c, sessionUID, requestToken)
	if err != nil {
		return "", err
	}

	authorizeURL, err := operations.BuildAuthorizeURL(requestToken.Value, authorizeParams)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error composing authorize-url for provider %s: %s", factory.ProviderID(), err))
	}

	return authorizeURL, nil
}

func (s *service) buildOAuth2AuthorizeURL(c context.Context, factory *connectfactory.OAuth2ConnectionFactory, callbackURL string, scope string) (string, error) {
	authorizeURL, err := factory.OAuthOperations().BuildAuthorizeURL(c, connectfactory.AuthorizeURLRequest{
		RedirectURI: callbackURL,
		Scope:       scope,
		State:       s.uuider.Create(),
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error composing authorize-url for provider %s: %s", factory.ProviderID(), err))
	}

	return authorizeURL, nil
}

func (s *service) buildCustomAuthorizeURL(c context.Context, factory connectfactory.ConnectionFactory, callbackURL string, rc RequestContext) (string, error) {
	builder, found := s.customStrategies[factory.ProviderID()]
	if !found {
		return "", myerrors.NewNotImplementedError(fmt.Errorf("no authorization strategy for provider %s", factory.ProviderID()))
	}

	authorizeURL, err := builder(c, factory, callbackURL, rc)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error composing authorize-url for provider %s: %s", factory.ProviderID(), err))
	}

	return authorizeURL, nil
}

func (s *service) completeOAuth1Connect(c context.Context, sessionUID string, providerID string, verifier string, params url.Values) (string, error) {
	s.logger.Log(c, providerID, mylog.SeverityInfo, "Incoming oauth1 callback from provider %s for session %s", providerID, sessionUID)

	factory, err := s.locator.Lookup(providerID)
	if err != nil {
		return "", myerrors.NewNotFoundError(err)
	}

	oauth1Factory, ok := factory.(*connectfactory.OAuth1ConnectionFactory)
	if !ok {
		return "", myerrors.NewInvalidInputErrorf("provider %s does not connect via oauth1", providerID)
	}

	// the cached token is gone after this, whatever happens next
	requestToken, err := s.extractCachedRequestToken(c, sessionUID)
	if err != nil {
		return "", err
	}

	accessToken, err := oauth1Factory.OAuthOperations().ExchangeForAccessToken(c, connectfactory.AuthorizedRequestToken{
		Value:    requestToken.Value,
		Secret:   requestToken.Secret,
		Verifier: verifier,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error exchanging request-token at provider %s: %s", providerID, err))
	}

	connection, err := oauth1Factory.CreateConnection(c, accessToken)
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	err = s.addConnection(c, sessionUID, factory, connection, params)
	if err != nil {
		return "", err
	}

	return connectionStatusPath(providerID), nil
}

func (s *service) completeOAuth2Connect(c context.Context, sessionUID string, providerID string, code string, params url.Values, hostname string) (string, error) {
	s.logger.Log(c, providerID, mylog.SeverityInfo, "Incoming oauth2 callback from provider %s for session %s", providerID, sessionUID)

	factory, err := s.locator.Lookup(providerID)
	if err != nil {
		return "", myerrors.NewNotFoundError(err)
	}

	oauth2Factory, ok := factory.(*connectfactory.OAuth2ConnectionFactory)
	if !ok {
		return "", myerrors.NewInvalidInputErrorf("provider %s does not connect via oauth2", providerID)
	}

	grant, err := oauth2Factory.OAuthOperations().ExchangeForAccess(c, code, createCallbackURL(hostname, providerID))
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error exchanging authorization-code at provider %s: %s", providerID, err))
	}

	connection, err := oauth2Factory.CreateConnection(c, grant)
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	err = s.addConnection(c, sessionUID, factory, connection, params)
	if err != nil {
		return "", err
	}

	return connectionStatusPath(providerID), nil
}

func (s *service) addConnection(c context.Context, sessionUID string, factory connectfactory.ConnectionFactory, connection connections.Connection, params url.Values) error {
	connection.CreatedAt = s.nower.Now()

	err := s.repo.Add(c, sessionUID, connection)
	if err != nil {
		if errors.Is(err, connections.ErrDuplicateConnection) {
			s.logger.Log(c, connection.ProviderID, mylog.SeverityWarn, "Session %s is already connected to %s as %s", sessionUID, connection.ProviderID, connection.ProviderUserID)
			return s.markDuplicateAttempt(c, sessionUID)
		}
		return myerrors.NewInternalError(fmt.Errorf("error storing connection: %s", err))
	}

	requestContext := RequestContext{
		SessionUID: sessionUID,
		Params:     params,
	}
	for _, interceptor := range s.interceptors.InterceptorsFor(factory) {
		interceptor.PostConnect(c, connection, requestContext)
	}

	err = s.publisher.Publish(c, connectevents.TopicName, connectevents.ConnectionEstablished{
		ProviderID:     connection.ProviderID,
		ProviderUserID: connection.ProviderUserID,
		SessionUID:     sessionUID,
	})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	return nil
}

func (s *service) removeConnections(c context.Context, sessionUID string, providerID string) (string, error) {
	s.logger.Log(c, providerID, mylog.SeverityInfo, "Remove all connections with provider %s for session %s", providerID, sessionUID)

	err := s.repo.RemoveAll(c, sessionUID, providerID)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error removing connections: %s", err))
	}

	err = s.publisher.Publish(c, connectevents.TopicName, connectevents.ConnectionRemoved{
		ProviderID: providerID,
		SessionUID: sessionUID,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	return connectionStatusPath(providerID), nil
}

func (s *service) removeConnection(c context.Context, sessionUID string, providerID string, providerUserID string) (string, error) {
	s.logger.Log(c, providerID, mylog.SeverityInfo, "Remove connection %s with provider %s for session %s", providerUserID, providerID, sessionUID)

	err := s.repo.RemoveOne(c, sessionUID, connections.ConnectionKey{
		ProviderID:     providerID,
		ProviderUserID: providerUserID,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error removing connection: %s", err))
	}

	err = s.publisher.Publish(c, connectevents.TopicName, connectevents.ConnectionRemoved{
		ProviderID:     providerID,
		ProviderUserID: providerUserID,
		SessionUID:     sessionUID,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	return connectionStatusPath(providerID), nil
}

func (s *service) cacheRequestToken(c context.Context, sessionUID string, requestToken connectfactory.RequestToken) error {
	serialized, err := json.Marshal(requestToken)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error serializing request-token: %s", err))
	}

	err = s.sessionStore.Set(c, sessionUID, requestTokenSessionKey, string(serialized))
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error caching request-token in session: %s", err))
	}

	return nil
}

func (s *service) extractCachedRequestToken(c context.Context, sessionUID string) (connectfactory.RequestToken, error) {
	serialized, exists, err := s.sessionStore.Get(c, sessionUID, requestTokenSessionKey)
	if err != nil {
		return connectfactory.RequestToken{}, myerrors.NewInternalError(fmt.Errorf("error reading session: %s", err))
	}
	if !exists {
		return connectfactory.RequestToken{}, myerrors.NewInvalidInputErrorf("no request-token cached for session %s", sessionUID)
	}

	err = s.sessionStore.Remove(c, sessionUID, requestTokenSessionKey)
	if err != nil {
		return connectfactory.RequestToken{}, myerrors.NewInternalError(fmt.Errorf("error clearing session: %s", err))
	}

	requestToken := connectfactory.RequestToken{}
	err = json.Unmarshal([]byte(serialized), &requestToken)
	if err != nil {
		return connectfactory.RequestToken{}, myerrors.NewInternalError(fmt.Errorf("error deserializing request-token: %s", err))
	}

	return requestToken, nil
}

func (s *service) markDuplicateAttempt(c context.Context, sessionUID string) error {
	err := s.sessionStore.Set(c, sessionUID, duplicateFlagSessionKey, "true")
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error flagging duplicate in session: %s", err))
	}

	return nil
}
