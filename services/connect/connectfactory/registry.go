package connectfactory

import (
	"fmt"
)

// FactoryRegistry is a map-backed ConnectionFactoryLocator. It is populated
// once at configuration time and read-only afterwards.
type FactoryRegistry struct {
	factories map[string]ConnectionFactory
}

func NewFactoryRegistry() *FactoryRegistry {
	return &FactoryRegistry{
		factories: map[string]ConnectionFactory{},
	}
}

func (r *FactoryRegistry) Register(factory ConnectionFactory) {
	r.factories[factory.ProviderID()] = factory
}

func (r *FactoryRegistry) Lookup(providerID string) (ConnectionFactory, error) {
	factory, found := r.factories[providerID]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
	}

	return factory, nil
}
