package oauth2client

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
)

// Client implements connectfactory.OAuth2Operations on top of the
// authorization-code-grant machinery of golang.org/x/oauth2.
type Client struct {
	config *oauth2.Config
}

func New(clientID string, clientSecret string, endpoint oauth2.Endpoint, defaultScopes []string) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
			Scopes:       defaultScopes,
		},
	}
}

func (cl *Client) BuildAuthorizeURL(c context.Context, req connectfactory.AuthorizeURLRequest) (string, error) {
	config := cl.configFor(req.RedirectURI)
	if req.Scope != "" {
		config.Scopes = strings.Fields(req.Scope)
	}
	return config.AuthCodeURL(req.State), nil
}

func (cl *Client) ExchangeForAccess(c context.Context, code string, redirectURI string) (connectfactory.AccessGrant, error) {
	config := cl.configFor(redirectURI)

	token, err := config.Exchange(c, code)
	if err != nil {
		return connectfactory.AccessGrant{}, fmt.Errorf("error exchanging authorization-code for access-token: %s", err)
	}

	grant := connectfactory.AccessGrant{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		grant.Scope = scope
	}
	if !token.Expiry.IsZero() {
		expiresAt := token.Expiry
		grant.ExpiresAt = &expiresAt
	}

	return grant, nil
}

func (cl *Client) configFor(redirectURI string) *oauth2.Config {
	config := *cl.config
	config.RedirectURL = redirectURI
	return &config
}
