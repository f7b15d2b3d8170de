package connectfactory

import (
	"context"
	"fmt"

	"github.com/MarcGrol/socialconnect/services/connect/connections"
)

// Identity is the provider-side identity of the user who authorized access.
type Identity struct {
	ProviderUserID string
	DisplayName    string
	ProfileURL     string
	ImageURL       string
}

// OAuth1IdentityFetcher resolves the identity behind an OAuth1 token pair by
// calling the provider. Registered per provider at configuration time.
type OAuth1IdentityFetcher func(c context.Context, accessToken AccessToken) (Identity, error)

// OAuth2IdentityFetcher resolves the identity behind an OAuth2 access token.
type OAuth2IdentityFetcher func(c context.Context, accessToken string) (Identity, error)

type OAuth1ConnectionFactory struct {
	providerID string
	apiKind    APIKind
	operations OAuth1Operations
	identity   OAuth1IdentityFetcher
}

func NewOAuth1ConnectionFactory(providerID string, apiKind APIKind, operations OAuth1Operations, identity OAuth1IdentityFetcher) *OAuth1ConnectionFactory {
	return &OAuth1ConnectionFactory{
		providerID: providerID,
		apiKind:    apiKind,
		operations: operations,
		identity:   identity,
	}
}

func (f *OAuth1ConnectionFactory) ProviderID() string {
	return f.providerID
}

func (f *OAuth1ConnectionFactory) APIKind() APIKind {
	return f.apiKind
}

func (f *OAuth1ConnectionFactory) OAuthOperations() OAuth1Operations {
	return f.operations
}

func (f *OAuth1ConnectionFactory) CreateConnection(c context.Context, accessToken AccessToken) (connections.Connection, error) {
	identity, err := f.identity(c, accessToken)
	if err != nil {
		return connections.Connection{}, fmt.Errorf("error resolving identity at provider %s: %s", f.providerID, err)
	}

	return connections.Connection{
		ProviderID:     f.providerID,
		ProviderUserID: identity.ProviderUserID,
		DisplayName:    identity.DisplayName,
		ProfileURL:     identity.ProfileURL,
		ImageURL:       identity.ImageURL,
		AccessToken:    accessToken.Value,
		Secret:         accessToken.Secret,
	}, nil
}

type OAuth2ConnectionFactory struct {
	providerID string
	apiKind    APIKind
	operations OAuth2Operations
	identity   OAuth2IdentityFetcher
}

func NewOAuth2ConnectionFactory(providerID string, apiKind APIKind, operations OAuth2Operations, identity OAuth2IdentityFetcher) *OAuth2ConnectionFactory {
	return &OAuth2ConnectionFactory{
		providerID: providerID,
		apiKind:    apiKind,
		operations: operations,
		identity:   identity,
	}
}

func (f *OAuth2ConnectionFactory) ProviderID() string {
	return f.providerID
}

func (f *OAuth2ConnectionFactory) APIKind() APIKind {
	return f.apiKind
}

func (f *OAuth2ConnectionFactory) OAuthOperations() OAuth2Operations {
	return f.operations
}

func (f *OAuth2ConnectionFactory) CreateConnection(c context.Context, grant AccessGrant) (connections.Connection, error) {
	identity, err := f.identity(c, grant.AccessToken)
	if err != nil {
		return connections.Connection{}, fmt.Errorf("error resolving identity at provider %s: %s", f.providerID, err)
	}

	return connections.Connection{
		ProviderID:     f.providerID,
		ProviderUserID: identity.ProviderUserID,
		DisplayName:    identity.DisplayName,
		ProfileURL:     identity.ProfileURL,
		ImageURL:       identity.ImageURL,
		AccessToken:    grant.AccessToken,
		RefreshToken:   grant.RefreshToken,
		ExpiresAt:      grant.ExpiresAt,
	}, nil
}
