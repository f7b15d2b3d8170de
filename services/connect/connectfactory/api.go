package connectfactory

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// ErrUnknownProvider is returned by a locator when no factory is registered
// for the requested provider id.
var ErrUnknownProvider = errors.New("unknown provider")

// APIKind tags the remote service API a factory produces connections for
// (and the API interceptors specialize in). Matching is by exact value.
type APIKind string

type OAuth1Version int

const (
	// OAuth1VersionCore10 is the original OAuth 1.0 protocol: the callback
	// travels as an authorize-URL parameter.
	OAuth1VersionCore10 OAuth1Version = iota
	// OAuth1VersionCore10a is revision A: the callback is established when
	// fetching the request token and a verifier comes back on the callback.
	OAuth1VersionCore10a
)

// RequestToken is the OAuth1 temporary credential. It lives in session
// storage between the redirect to the provider and the callback.
type RequestToken struct {
	Value  string
	Secret string
}

// AuthorizedRequestToken is a request token the user has authorized,
// optionally carrying the 1.0a verifier.
type AuthorizedRequestToken struct {
	Value    string
	Secret   string
	Verifier string
}

// AccessToken is the OAuth1 token pair obtained by exchanging an authorized
// request token.
type AccessToken struct {
	Value  string
	Secret string
}

// AccessGrant is the OAuth2 result of exchanging an authorization code.
type AccessGrant struct {
	AccessToken  string
	RefreshToken string
	Scope        string
	ExpiresAt    *time.Time
}

//go:generate mockgen -source=api.go -package connectfactory -destination operations_mock.go OAuth1Operations,OAuth2Operations
type OAuth1Operations interface {
	Version() OAuth1Version
	FetchRequestToken(c context.Context, callbackURL string) (RequestToken, error)
	BuildAuthorizeURL(requestTokenValue string, params url.Values) (string, error)
	ExchangeForAccessToken(c context.Context, authorized AuthorizedRequestToken) (AccessToken, error)
}

type AuthorizeURLRequest struct {
	RedirectURI string
	Scope       string
	State       string
}

type OAuth2Operations interface {
	BuildAuthorizeURL(c context.Context, req AuthorizeURLRequest) (string, error)
	ExchangeForAccess(c context.Context, code string, redirectURI string) (AccessGrant, error)
}

// ConnectionFactory is the per-provider strategy for establishing
// connections. The concrete type determines the handshake flavor:
// *OAuth1ConnectionFactory, *OAuth2ConnectionFactory, or anything else
// (custom auth, handled by a registered strategy).
type ConnectionFactory interface {
	ProviderID() string
	APIKind() APIKind
}

type ConnectionFactoryLocator interface {
	Lookup(providerID string) (ConnectionFactory, error)
}
