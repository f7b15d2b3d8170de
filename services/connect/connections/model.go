package connections

import (
	"errors"
	"time"
)

// ErrDuplicateConnection is returned by Repository.Add when the account
// already has a connection with the same (providerID, providerUserID).
var ErrDuplicateConnection = errors.New("duplicate connection")

// ConnectionKey identifies one connection within the scope of an account.
type ConnectionKey struct {
	ProviderID     string
	ProviderUserID string
}

// Connection is an established link between a local account and an account
// held at a service provider. It is created only after a successful token
// exchange and is immutable once stored.
type Connection struct {
	ProviderID     string
	ProviderUserID string
	DisplayName    string
	ProfileURL     string
	ImageURL       string
	AccessToken    string
	Secret         string
	RefreshToken   string
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

func (c Connection) Key() ConnectionKey {
	return ConnectionKey{
		ProviderID:     c.ProviderID,
		ProviderUserID: c.ProviderUserID,
	}
}
