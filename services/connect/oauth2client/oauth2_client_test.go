package oauth2client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
)

func TestBuildAuthorizeURL(t *testing.T) {
	client := newTestClient("https://provider.example.com", nil)

	// when
	authorizeURL, err := client.BuildAuthorizeURL(context.TODO(), connectfactory.AuthorizeURLRequest{
		RedirectURI: "http://localhost:8888/connect/github",
		Scope:       "user:email repo",
		State:       "state-123",
	})

	// then
	assert.NoError(t, err)
	parsed, err := url.Parse(authorizeURL)
	assert.NoError(t, err)
	assert.Equal(t, "https", parsed.Scheme)
	assert.Equal(t, "provider.example.com", parsed.Host)
	assert.Equal(t, "/oauth/authorize", parsed.Path)
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:8888/connect/github", parsed.Query().Get("redirect_uri"))
	assert.Equal(t, "user:email repo", parsed.Query().Get("scope"))
	assert.Equal(t, "state-123", parsed.Query().Get("state"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
}

func TestBuildAuthorizeURLWithDefaultScopes(t *testing.T) {
	client := newTestClient("https://provider.example.com", []string{"user:email"})

	// when
	authorizeURL, err := client.BuildAuthorizeURL(context.TODO(), connectfactory.AuthorizeURLRequest{
		RedirectURI: "http://localhost:8888/connect/github",
		State:       "state-123",
	})

	// then
	assert.NoError(t, err)
	parsed, err := url.Parse(authorizeURL)
	assert.NoError(t, err)
	assert.Equal(t, "user:email", parsed.Query().Get("scope"))
}

func TestExchangeForAccess(t *testing.T) {
	var receivedForm url.Values
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		assert.NoError(t, err)
		receivedForm = r.Form
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"access-token","refresh_token":"refresh-token","token_type":"bearer","expires_in":3600,"scope":"user:email"}`)
	}))
	defer provider.Close()

	client := newTestClient(provider.URL, nil)

	// when
	grant, err := client.ExchangeForAccess(context.TODO(), "code-789", "http://localhost:8888/connect/github")

	// then
	assert.NoError(t, err)
	assert.Equal(t, "access-token", grant.AccessToken)
	assert.Equal(t, "refresh-token", grant.RefreshToken)
	assert.Equal(t, "user:email", grant.Scope)
	assert.NotNil(t, grant.ExpiresAt)
	assert.Equal(t, "code-789", receivedForm.Get("code"))
	assert.Equal(t, "http://localhost:8888/connect/github", receivedForm.Get("redirect_uri"))
}

func TestExchangeForAccessError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer provider.Close()

	client := newTestClient(provider.URL, nil)

	// when
	_, err := client.ExchangeForAccess(context.TODO(), "bogus", "http://localhost:8888/connect/github")

	// then
	assert.Error(t, err)
}

func newTestClient(baseURL string, defaultScopes []string) *Client {
	return New("client-id", "client-secret", oauth2.Endpoint{
		AuthURL:  baseURL + "/oauth/authorize",
		TokenURL: baseURL + "/oauth/access_token",
	}, defaultScopes)
}
