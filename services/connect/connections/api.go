package connections

import (
	"context"
)

// Repository persists established connections per local account.
// Removal operations are idempotent: removing what does not exist succeeds.
//
//go:generate mockgen -source=api.go -package connections -destination repository_mock.go Repository
type Repository interface {
	FindConnections(c context.Context, accountUID string, providerID string) ([]Connection, error)
	Add(c context.Context, accountUID string, connection Connection) error
	RemoveAll(c context.Context, accountUID string, providerID string) error
	RemoveOne(c context.Context, accountUID string, key ConnectionKey) error
}
