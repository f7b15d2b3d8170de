package connections

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/socialconnect/lib/mystore"
)

type ConnectionRecord struct {
	AccountUID string
	Connection
}

type storeBackedRepository struct {
	store mystore.Store[ConnectionRecord]
}

func NewRepository(c context.Context) (Repository, func(), error) {
	store, cleanup, err := mystore.New[ConnectionRecord](c)
	if err != nil {
		return nil, nil, err
	}

	return &storeBackedRepository{
		store: store,
	}, cleanup, nil
}

func NewRepositoryWithStore(store mystore.Store[ConnectionRecord]) *storeBackedRepository {
	return &storeBackedRepository{
		store: store,
	}
}

func (r *storeBackedRepository) FindConnections(c context.Context, accountUID string, providerID string) ([]Connection, error) {
	records, err := r.store.List(c)
	if err != nil {
		return nil, fmt.Errorf("error fetching connections for provider %s: %s", providerID, err)
	}

	found := []Connection{}
	for _, record := range records {
		if record.AccountUID == accountUID && record.ProviderID == providerID {
			found = append(found, record.Connection)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].ProviderUserID < found[j].ProviderUserID
	})

	return found, nil
}

func (r *storeBackedRepository) Add(c context.Context, accountUID string, connection Connection) error {
	uid := composeConnectionUID(accountUID, connection.Key())

	return r.store.RunInTransaction(c, func(c context.Context) error {
		_, exists, err := r.store.Get(c, uid)
		if err != nil {
			return fmt.Errorf("error checking for existing connection %s: %s", uid, err)
		}
		if exists {
			return ErrDuplicateConnection
		}

		err = r.store.Put(c, uid, ConnectionRecord{
			AccountUID: accountUID,
			Connection: connection,
		})
		if err != nil {
			return fmt.Errorf("error storing connection %s: %s", uid, err)
		}

		return nil
	})
}

func (r *storeBackedRepository) RemoveAll(c context.Context, accountUID string, providerID string) error {
	existing, err := r.FindConnections(c, accountUID, providerID)
	if err != nil {
		return err
	}

	for _, connection := range existing {
		err = r.store.Remove(c, composeConnectionUID(accountUID, connection.Key()))
		if err != nil {
			return fmt.Errorf("error removing connection to provider %s: %s", providerID, err)
		}
	}

	return nil
}

func (r *storeBackedRepository) RemoveOne(c context.Context, accountUID string, key ConnectionKey) error {
	err := r.store.Remove(c, composeConnectionUID(accountUID, key))
	if err != nil {
		return fmt.Errorf("error removing connection %s/%s: %s", key.ProviderID, key.ProviderUserID, err)
	}

	return nil
}

func composeConnectionUID(accountUID string, key ConnectionKey) string {
	return accountUID + "_" + key.ProviderID + "_" + key.ProviderUserID
}
