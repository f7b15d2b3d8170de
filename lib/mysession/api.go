package mysession

import (
	"context"
)

// SessionStore is short-lived key-value storage scoped to a single browser
// session. Values live from one request to a later one within the same
// session (request tokens, flash notices) and are never shared across
// sessions.
//
//go:generate mockgen -source=api.go -package mysession -destination session_mock.go SessionStore
type SessionStore interface {
	Get(c context.Context, sessionUID string, key string) (string, bool, error)
	Set(c context.Context, sessionUID string, key string, value string) error
	Remove(c context.Context, sessionUID string, key string) error
}

func New(c context.Context) (SessionStore, func(), error) {
	return newStoreBackedSessionStore(c)
}
