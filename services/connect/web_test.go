package connect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/socialconnect/lib/mypublisher"
	"github.com/MarcGrol/socialconnect/lib/mysession"
	"github.com/MarcGrol/socialconnect/lib/mystore"
	"github.com/MarcGrol/socialconnect/lib/mytime"
	"github.com/MarcGrol/socialconnect/lib/myuuid"
	"github.com/MarcGrol/socialconnect/services/connect/connectevents"
	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/connections"
)

const (
	exampleSessionUID       = "session-123"
	exampleRequestTokenJSON = `{"Value":"abc123","Secret":"request-secret"}`
)

func TestConnect(t *testing.T) {

	t.Run("Get status page when not connected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, repo, _, _, _, _, _, _ := setup(t, ctrl)

		// given
		repo.EXPECT().FindConnections(gomock.Any(), exampleSessionUID, "twitter").Return([]connections.Connection{}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/connect/twitter", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "Connect to twitter")
		assert.NotContains(t, got, "already connected")
	})

	t.Run("Get status page when connected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, repo, _, _, _, _, _, _ := setup(t, ctrl)

		// given
		repo.EXPECT().FindConnections(gomock.Any(), exampleSessionUID, "twitter").Return([]connections.Connection{
			{
				ProviderID:     "twitter",
				ProviderUserID: "1234567",
				DisplayName:    "@kdonald",
				ProfileURL:     "https://twitter.com/kdonald",
				CreatedAt:      mytime.ExampleTime,
			},
		}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/connect/twitter", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "Connected to twitter")
		assert.Contains(t, got, "@kdonald")
		assert.Contains(t, got, "1234567")
	})

	t.Run("Duplicate notice is shown exactly once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, sessionStore, repo, _, _, _, _, _, _ := setup(t, ctrl)

		// given
		err := sessionStore.Set(ctx, exampleSessionUID, duplicateFlagSessionKey, "true")
		assert.NoError(t, err)
		repo.EXPECT().FindConnections(gomock.Any(), exampleSessionUID, "twitter").Return([]connections.Connection{}, nil).Times(2)

		// when
		first := doRequest(t, router, http.MethodGet, "/connect/twitter", "")
		second := doRequest(t, router, http.MethodGet, "/connect/twitter", "")

		// then
		assert.Equal(t, 200, first.Code)
		assert.Contains(t, first.Body.String(), "already connected")
		assert.Equal(t, 200, second.Code)
		assert.NotContains(t, second.Body.String(), "already connected")

		_, exists, err := sessionStore.Get(ctx, exampleSessionUID, duplicateFlagSessionKey)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Start connect with oauth1 provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, sessionStore, _, oauth1Operations, _, _, _, publisher, interceptor := setup(t, ctrl)

		// given
		oauth1Operations.EXPECT().Version().Return(connectfactory.OAuth1VersionCore10a)
		oauth1Operations.EXPECT().FetchRequestToken(gomock.Any(), "http://localhost:8888/connect/twitter").Return(connectfactory.RequestToken{
			Value:  "abc123",
			Secret: "request-secret",
		}, nil)
		oauth1Operations.EXPECT().BuildAuthorizeURL("abc123", url.Values{}).Return("https://api.twitter.com/oauth/authorize?oauth_token=abc123", nil)
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectStarted{
			ProviderID: "twitter",
			SessionUID: exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/connect/twitter", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "https://api.twitter.com/oauth/authorize?oauth_token=abc123", response.Header().Get("Location"))

		cached, exists, err := sessionStore.Get(ctx, exampleSessionUID, requestTokenSessionKey)
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, exampleRequestTokenJSON, cached)

		assert.Equal(t, []string{"twitter"}, interceptor.preConnectCalls)
		assert.Empty(t, interceptor.postConnectCalls)
	})

	t.Run("Start connect with legacy oauth1 provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, oauth1Operations, _, _, _, publisher, _ := setup(t, ctrl)

		// given
		oauth1Operations.EXPECT().Version().Return(connectfactory.OAuth1VersionCore10)
		oauth1Operations.EXPECT().FetchRequestToken(gomock.Any(), "").Return(connectfactory.RequestToken{
			Value:  "abc123",
			Secret: "request-secret",
		}, nil)
		oauth1Operations.EXPECT().BuildAuthorizeURL("abc123", url.Values{
			"oauth_callback": []string{"http://localhost:8888/connect/tripit"},
		}).Return("https://api.tripit.com/oauth/authorize?oauth_token=abc123&oauth_callback=http%3A%2F%2Flocalhost%3A8888%2Fconnect%2Ftripit", nil)
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectStarted{
			ProviderID: "tripit",
			SessionUID: exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/connect/tripit", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Contains(t, response.Header().Get("Location"), "oauth_callback=")
	})

	t.Run("Start connect with oauth2 provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, oauth2Operations, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("state-789")
		oauth2Operations.EXPECT().BuildAuthorizeURL(gomock.Any(), connectfactory.AuthorizeURLRequest{
			RedirectURI: "http://localhost:8888/connect/github",
			Scope:       "user:email",
			State:       "state-789",
		}).Return("https://github.com/login/oauth/authorize?client_id=client-id&state=state-789", nil)
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectStarted{
			ProviderID: "github",
			SessionUID: exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/connect/github", "scope=user:email")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "https://github.com/login/oauth/authorize?client_id=client-id&state=state-789", response.Header().Get("Location"))
	})

	t.Run("Start connect with unknown provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/connect/bogus", "")

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Start connect with custom provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _, publisher, _ := setup(t, ctrl)

		// given
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectStarted{
			ProviderID: "imap",
			SessionUID: exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/connect/imap", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "https://mail.example.com/authorize?callback=http%3A%2F%2Flocalhost%3A8888%2Fconnect%2Fimap", response.Header().Get("Location"))
	})

	t.Run("Start connect with custom provider without strategy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/connect/xmpp", "")

		// then
		assert.Equal(t, 501, response.Code)
	})

	t.Run("Complete oauth1 connect", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, sessionStore, repo, oauth1Operations, _, nower, _, publisher, interceptor := setup(t, ctrl)

		// given
		err := sessionStore.Set(ctx, exampleSessionUID, requestTokenSessionKey, exampleRequestTokenJSON)
		assert.NoError(t, err)

		oauth1Operations.EXPECT().ExchangeForAccessToken(gomock.Any(), connectfactory.AuthorizedRequestToken{
			Value:    "abc123",
			Secret:   "request-secret",
			Verifier: "verifier456",
		}).Return(connectfactory.AccessToken{
			Value:  "access-token",
			Secret: "access-secret",
		}, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		repo.EXPECT().Add(gomock.Any(), exampleSessionUID, gomock.Any()).DoAndReturn(
			func(ctx context.Context, accountUID string, connection connections.Connection) error {
				assert.Equal(t, "twitter", connection.ProviderID)
				assert.Equal(t, "1234567", connection.ProviderUserID)
				assert.Equal(t, "@kdonald", connection.DisplayName)
				assert.Equal(t, "access-token", connection.AccessToken)
				assert.Equal(t, "access-secret", connection.Secret)
				assert.Equal(t, mytime.ExampleTime, connection.CreatedAt)
				return nil
			})
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectionEstablished{
			ProviderID:     "twitter",
			ProviderUserID: "1234567",
			SessionUID:     exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/connect/twitter?oauth_token=abc123&oauth_verifier=verifier456", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "/connect/twitter", response.Header().Get("Location"))

		_, exists, err := sessionStore.Get(ctx, exampleSessionUID, requestTokenSessionKey)
		assert.NoError(t, err)
		assert.False(t, exists)

		assert.Len(t, interceptor.postConnectCalls, 1)
		assert.Equal(t, "1234567", interceptor.postConnectCalls[0].ProviderUserID)
	})

	t.Run("Oauth1 callback clears request token when exchange fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, sessionStore, _, oauth1Operations, _, _, _, _, interceptor := setup(t, ctrl)

		// given
		err := sessionStore.Set(ctx, exampleSessionUID, requestTokenSessionKey, exampleRequestTokenJSON)
		assert.NoError(t, err)

		oauth1Operations.EXPECT().ExchangeForAccessToken(gomock.Any(), gomock.Any()).Return(connectfactory.AccessToken{}, assert.AnError)

		// when
		response := doRequest(t, router, http.MethodGet, "/connect/twitter?oauth_token=abc123&oauth_verifier=verifier456", "")

		// then
		assert.Equal(t, 500, response.Code)

		_, exists, err := sessionStore.Get(ctx, exampleSessionUID, requestTokenSessionKey)
		assert.NoError(t, err)
		assert.False(t, exists)

		assert.Empty(t, interceptor.postConnectCalls)
	})

	t.Run("Oauth1 callback without cached request token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/connect/twitter?oauth_token=abc123&oauth_verifier=verifier456", "")

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Complete oauth2 connect", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, repo, _, oauth2Operations, nower, _, publisher, _ := setup(t, ctrl)

		// given
		oauth2Operations.EXPECT().ExchangeForAccess(gomock.Any(), "code-789", "http://localhost:8888/connect/github").Return(connectfactory.AccessGrant{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			Scope:        "user:email",
		}, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		repo.EXPECT().Add(gomock.Any(), exampleSessionUID, gomock.Any()).DoAndReturn(
			func(ctx context.Context, accountUID string, connection connections.Connection) error {
				assert.Equal(t, "github", connection.ProviderID)
				assert.Equal(t, "habuma", connection.ProviderUserID)
				assert.Equal(t, "access-token", connection.AccessToken)
				assert.Equal(t, "refresh-token", connection.RefreshToken)
				assert.Equal(t, mytime.ExampleTime, connection.CreatedAt)
				return nil
			})
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectionEstablished{
			ProviderID:     "github",
			ProviderUserID: "habuma",
			SessionUID:     exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/connect/github?code=code-789", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "/connect/github", response.Header().Get("Location"))
	})

	t.Run("Duplicate connection flags session and skips post-connect", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, sessionStore, repo, oauth1Operations, _, nower, _, _, interceptor := setup(t, ctrl)

		// given
		err := sessionStore.Set(ctx, exampleSessionUID, requestTokenSessionKey, exampleRequestTokenJSON)
		assert.NoError(t, err)

		oauth1Operations.EXPECT().ExchangeForAccessToken(gomock.Any(), gomock.Any()).Return(connectfactory.AccessToken{
			Value:  "access-token",
			Secret: "access-secret",
		}, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		repo.EXPECT().Add(gomock.Any(), exampleSessionUID, gomock.Any()).Return(connections.ErrDuplicateConnection)

		// when
		response := doRequest(t, router, http.MethodGet, "/connect/twitter?oauth_token=abc123&oauth_verifier=verifier456", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "/connect/twitter", response.Header().Get("Location"))

		flag, exists, err := sessionStore.Get(ctx, exampleSessionUID, duplicateFlagSessionKey)
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "true", flag)

		assert.Empty(t, interceptor.postConnectCalls)
	})

	t.Run("Remove all connections", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, repo, _, _, _, _, publisher, _ := setup(t, ctrl)

		// given
		repo.EXPECT().RemoveAll(gomock.Any(), exampleSessionUID, "twitter").Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectionRemoved{
			ProviderID: "twitter",
			SessionUID: exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodDelete, "/connect/twitter", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "/connect/twitter", response.Header().Get("Location"))
	})

	t.Run("Remove one connection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, repo, _, _, _, _, publisher, _ := setup(t, ctrl)

		// given
		repo.EXPECT().RemoveOne(gomock.Any(), exampleSessionUID, connections.ConnectionKey{
			ProviderID:     "twitter",
			ProviderUserID: "1234567",
		}).Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), connectevents.TopicName, connectevents.ConnectionRemoved{
			ProviderID:     "twitter",
			ProviderUserID: "1234567",
			SessionUID:     exampleSessionUID,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodDelete, "/connect/twitter/1234567", "")

		// then
		assert.Equal(t, 302, response.Code)
		assert.Equal(t, "/connect/twitter", response.Header().Get("Location"))
	})
}

type recordingInterceptor struct {
	preConnectCalls  []string
	postConnectCalls []connections.Connection
}

func (i *recordingInterceptor) PreConnect(c context.Context, factory connectfactory.ConnectionFactory, rc RequestContext) {
	i.preConnectCalls = append(i.preConnectCalls, factory.ProviderID())
}

func (i *recordingInterceptor) PostConnect(c context.Context, connection connections.Connection, rc RequestContext) {
	i.postConnectCalls = append(i.postConnectCalls, connection)
}

type customFactory struct {
	providerID string
	apiKind    connectfactory.APIKind
}

func (f customFactory) ProviderID() string {
	return f.providerID
}

func (f customFactory) APIKind() connectfactory.APIKind {
	return f.apiKind
}

func twitterIdentity(c context.Context, accessToken connectfactory.AccessToken) (connectfactory.Identity, error) {
	return connectfactory.Identity{
		ProviderUserID: "1234567",
		DisplayName:    "@kdonald",
		ProfileURL:     "https://twitter.com/kdonald",
		ImageURL:       "https://twitter.com/kdonald/picture",
	}, nil
}

func githubIdentity(c context.Context, accessToken string) (connectfactory.Identity, error) {
	return connectfactory.Identity{
		ProviderUserID: "habuma",
		DisplayName:    "Craig Walls",
		ProfileURL:     "https://github.com/habuma",
	}, nil
}

func doRequest(t *testing.T, router *mux.Router, method string, target string, body string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	} else {
		bodyReader = strings.NewReader("")
	}

	request, err := http.NewRequest(method, target, bodyReader)
	assert.NoError(t, err)
	request.Host = "localhost:8888"
	if body != "" {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: exampleSessionUID})

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mysession.SessionStore, *connections.MockRepository, *connectfactory.MockOAuth1Operations, *connectfactory.MockOAuth2Operations, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher, *recordingInterceptor) {
	ctx := context.TODO()
	router := mux.NewRouter()

	sessionBackingStore, _, err := mystore.NewInMemoryStore[mysession.SessionEntry](ctx)
	assert.NoError(t, err)
	sessionStore := mysession.NewWithStore(sessionBackingStore)

	repo := connections.NewMockRepository(ctrl)
	oauth1Operations := connectfactory.NewMockOAuth1Operations(ctrl)
	oauth2Operations := connectfactory.NewMockOAuth2Operations(ctrl)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	registry := connectfactory.NewFactoryRegistry()
	registry.Register(connectfactory.NewOAuth1ConnectionFactory("twitter", "twitter", oauth1Operations, twitterIdentity))
	registry.Register(connectfactory.NewOAuth1ConnectionFactory("tripit", "tripit", oauth1Operations, twitterIdentity))
	registry.Register(connectfactory.NewOAuth2ConnectionFactory("github", "github", oauth2Operations, githubIdentity))
	registry.Register(customFactory{providerID: "imap", apiKind: "mail"})
	registry.Register(customFactory{providerID: "xmpp", apiKind: "chat"})

	interceptor := &recordingInterceptor{}
	interceptors := NewInterceptorRegistry()
	interceptors.Register("twitter", interceptor)

	sut := NewService(registry, repo, sessionStore, interceptors, nower, uuider, publisher)
	sut.RegisterCustomStrategy("imap", func(c context.Context, factory connectfactory.ConnectionFactory, callbackURL string, rc RequestContext) (string, error) {
		return "https://mail.example.com/authorize?callback=" + url.QueryEscape(callbackURL), nil
	})

	publisher.EXPECT().CreateTopic(gomock.Any(), connectevents.TopicName).Return(nil)

	err = sut.RegisterEndpoints(ctx, router)
	assert.NoError(t, err)

	return ctx, router, sessionStore, repo, oauth1Operations, oauth2Operations, nower, uuider, publisher, interceptor
}
