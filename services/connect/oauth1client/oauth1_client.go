package oauth1client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dghubble/oauth1"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
)

// outOfBandCallback is the OAuth1 value signalling that no callback URL is
// established when fetching the request token (pre-1.0a providers receive
// the callback as an authorize-URL parameter instead).
const outOfBandCallback = "oob"

// Client implements connectfactory.OAuth1Operations on top of the signing,
// request-token and access-token machinery of github.com/dghubble/oauth1.
type Client struct {
	config  *oauth1.Config
	version connectfactory.OAuth1Version
}

func New(consumerKey string, consumerSecret string, endpoint oauth1.Endpoint, version connectfactory.OAuth1Version) *Client {
	return &Client{
		config: &oauth1.Config{
			ConsumerKey:    consumerKey,
			ConsumerSecret: consumerSecret,
			Endpoint:       endpoint,
		},
		version: version,
	}
}

func (cl *Client) Version() connectfactory.OAuth1Version {
	return cl.version
}

func (cl *Client) FetchRequestToken(c context.Context, callbackURL string) (connectfactory.RequestToken, error) {
	config := *cl.config
	config.CallbackURL = callbackURL
	if config.CallbackURL == "" {
		config.CallbackURL = outOfBandCallback
	}

	value, secret, err := config.RequestToken()
	if err != nil {
		return connectfactory.RequestToken{}, fmt.Errorf("error fetching request-token: %s", err)
	}

	return connectfactory.RequestToken{
		Value:  value,
		Secret: secret,
	}, nil
}

func (cl *Client) BuildAuthorizeURL(requestTokenValue string, params url.Values) (string, error) {
	authorizeURL, err := cl.config.AuthorizationURL(requestTokenValue)
	if err != nil {
		return "", fmt.Errorf("error composing authorize-url: %s", err)
	}

	if len(params) > 0 {
		query := authorizeURL.Query()
		for key, values := range params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		authorizeURL.RawQuery = query.Encode()
	}

	return authorizeURL.String(), nil
}

func (cl *Client) ExchangeForAccessToken(c context.Context, authorized connectfactory.AuthorizedRequestToken) (connectfactory.AccessToken, error) {
	value, secret, err := cl.config.AccessToken(authorized.Value, authorized.Secret, authorized.Verifier)
	if err != nil {
		return connectfactory.AccessToken{}, fmt.Errorf("error exchanging request-token for access-token: %s", err)
	}

	return connectfactory.AccessToken{
		Value:  value,
		Secret: secret,
	}, nil
}
