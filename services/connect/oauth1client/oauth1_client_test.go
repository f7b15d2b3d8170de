package oauth1client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dghubble/oauth1"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
)

func TestFetchRequestToken(t *testing.T) {
	var receivedAuthorization string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuthorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		fmt.Fprint(w, "oauth_token=abc123&oauth_token_secret=request-secret&oauth_callback_confirmed=true")
	}))
	defer provider.Close()

	client := newTestClient(provider.URL, connectfactory.OAuth1VersionCore10a)

	// when
	requestToken, err := client.FetchRequestToken(context.TODO(), "http://localhost:8888/connect/twitter")

	// then
	assert.NoError(t, err)
	assert.Equal(t, "abc123", requestToken.Value)
	assert.Equal(t, "request-secret", requestToken.Secret)
	assert.Contains(t, receivedAuthorization, `oauth_callback="http%3A%2F%2Flocalhost%3A8888%2Fconnect%2Ftwitter"`)
}

func TestFetchRequestTokenWithoutCallback(t *testing.T) {
	var receivedAuthorization string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuthorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		fmt.Fprint(w, "oauth_token=abc123&oauth_token_secret=request-secret&oauth_callback_confirmed=true")
	}))
	defer provider.Close()

	client := newTestClient(provider.URL, connectfactory.OAuth1VersionCore10)

	// when
	_, err := client.FetchRequestToken(context.TODO(), "")

	// then
	assert.NoError(t, err)
	assert.Contains(t, receivedAuthorization, `oauth_callback="oob"`)
}

func TestBuildAuthorizeURL(t *testing.T) {
	client := newTestClient("https://api.example.com", connectfactory.OAuth1VersionCore10a)

	// when
	authorizeURL, err := client.BuildAuthorizeURL("abc123", nil)

	// then
	assert.NoError(t, err)
	assert.Equal(t, "https://api.example.com/oauth/authorize?oauth_token=abc123", authorizeURL)
}

func TestBuildAuthorizeURLWithAdditionalParams(t *testing.T) {
	client := newTestClient("https://api.example.com", connectfactory.OAuth1VersionCore10)

	// when
	authorizeURL, err := client.BuildAuthorizeURL("abc123", url.Values{
		"oauth_callback": []string{"http://localhost:8888/connect/tripit"},
	})

	// then
	assert.NoError(t, err)
	parsed, err := url.Parse(authorizeURL)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", parsed.Query().Get("oauth_token"))
	assert.Equal(t, "http://localhost:8888/connect/tripit", parsed.Query().Get("oauth_callback"))
}

func TestExchangeForAccessToken(t *testing.T) {
	var receivedAuthorization string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuthorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		fmt.Fprint(w, "oauth_token=access-token&oauth_token_secret=access-secret")
	}))
	defer provider.Close()

	client := newTestClient(provider.URL, connectfactory.OAuth1VersionCore10a)

	// when
	accessToken, err := client.ExchangeForAccessToken(context.TODO(), connectfactory.AuthorizedRequestToken{
		Value:    "abc123",
		Secret:   "request-secret",
		Verifier: "verifier",
	})

	// then
	assert.NoError(t, err)
	assert.Equal(t, "access-token", accessToken.Value)
	assert.Equal(t, "access-secret", accessToken.Secret)
	assert.Contains(t, receivedAuthorization, `oauth_verifier="verifier"`)
}

func TestExchangeForAccessTokenError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer provider.Close()

	client := newTestClient(provider.URL, connectfactory.OAuth1VersionCore10a)

	// when
	_, err := client.ExchangeForAccessToken(context.TODO(), connectfactory.AuthorizedRequestToken{
		Value:    "abc123",
		Secret:   "request-secret",
		Verifier: "verifier",
	})

	// then
	assert.Error(t, err)
}

func newTestClient(baseURL string, version connectfactory.OAuth1Version) *Client {
	return New("consumer-key", "consumer-secret", oauth1.Endpoint{
		RequestTokenURL: baseURL + "/oauth/request_token",
		AuthorizeURL:    baseURL + "/oauth/authorize",
		AccessTokenURL:  baseURL + "/oauth/access_token",
	}, version)
}
