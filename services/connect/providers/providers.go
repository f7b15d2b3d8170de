package providers

import (
	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
)

// RegisterAll registers a connection-factory for every provider whose
// credentials are present in the environment.
func RegisterAll(registry *connectfactory.FactoryRegistry) {
	registerTwitter(registry)
	registerGithub(registry)
}
