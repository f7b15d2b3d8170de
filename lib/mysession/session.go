package mysession

import (
	"context"
	"fmt"

	"github.com/MarcGrol/socialconnect/lib/mystore"
)

type SessionEntry struct {
	SessionUID string
	Key        string
	Value      string `datastore:",noindex"`
}

type storeBackedSessionStore struct {
	store mystore.Store[SessionEntry]
}

func newStoreBackedSessionStore(c context.Context) (*storeBackedSessionStore, func(), error) {
	store, cleanup, err := mystore.New[SessionEntry](c)
	if err != nil {
		return nil, nil, err
	}

	return &storeBackedSessionStore{
		store: store,
	}, cleanup, nil
}

func NewWithStore(store mystore.Store[SessionEntry]) *storeBackedSessionStore {
	return &storeBackedSessionStore{
		store: store,
	}
}

func (s *storeBackedSessionStore) Get(c context.Context, sessionUID string, key string) (string, bool, error) {
	entry, exists, err := s.store.Get(c, composeEntryUID(sessionUID, key))
	if err != nil {
		return "", false, fmt.Errorf("error fetching session-entry %s: %s", key, err)
	}
	if !exists {
		return "", false, nil
	}

	return entry.Value, true, nil
}

func (s *storeBackedSessionStore) Set(c context.Context, sessionUID string, key string, value string) error {
	err := s.store.Put(c, composeEntryUID(sessionUID, key), SessionEntry{
		SessionUID: sessionUID,
		Key:        key,
		Value:      value,
	})
	if err != nil {
		return fmt.Errorf("error storing session-entry %s: %s", key, err)
	}

	return nil
}

func (s *storeBackedSessionStore) Remove(c context.Context, sessionUID string, key string) error {
	err := s.store.Remove(c, composeEntryUID(sessionUID, key))
	if err != nil {
		return fmt.Errorf("error removing session-entry %s: %s", key, err)
	}

	return nil
}

func composeEntryUID(sessionUID string, key string) string {
	return sessionUID + "_" + key
}
