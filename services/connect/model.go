package connect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/connections"
)

const (
	// requestTokenSessionKey caches the OAuth1 request token between the
	// redirect to the provider and the callback.
	requestTokenSessionKey = "oauthToken"

	// duplicateFlagSessionKey flags that the last connect attempt hit an
	// already existing connection. Shown once on the status page.
	duplicateFlagSessionKey = "duplicateConnection"
)

// StatusPage is the model rendered by the connection status views.
type StatusPage struct {
	ProviderID          string
	Connections         []connections.Connection
	ShowDuplicateNotice bool
}

// ConnectRequest carries the form fields of a connect submission.
type ConnectRequest struct {
	Scope string `form:"scope"`
}

// RequestContext exposes the web request that triggered a connect flow to
// interceptors and custom authorization strategies.
type RequestContext struct {
	SessionUID string
	Params     url.Values
}

// CustomAuthURLBuilder composes the authorization URL for a provider whose
// factory is neither OAuth1 nor OAuth2. Registered per provider at
// configuration time.
type CustomAuthURLBuilder func(c context.Context, factory connectfactory.ConnectionFactory, callbackURL string, rc RequestContext) (string, error)

func createCallbackURL(hostname string, providerID string) string {
	return fmt.Sprintf("%s/connect/%s", hostname, providerID)
}

func connectionStatusPath(providerID string) string {
	return fmt.Sprintf("/connect/%s", providerID)
}
