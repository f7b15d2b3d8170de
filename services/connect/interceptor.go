package connect

import (
	"context"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/connections"
)

// ConnectInterceptor observes the connect flow for one kind of provider API.
// PreConnect runs before the user is redirected to the provider, PostConnect
// runs after a new connection has been stored. Duplicate attempts do not
// reach PostConnect.
type ConnectInterceptor interface {
	PreConnect(c context.Context, factory connectfactory.ConnectionFactory, rc RequestContext)
	PostConnect(c context.Context, connection connections.Connection, rc RequestContext)
}

// InterceptorRegistry holds interceptors keyed by the API kind they apply
// to. Populated once at configuration time and read-only afterwards.
type InterceptorRegistry struct {
	interceptors map[connectfactory.APIKind][]ConnectInterceptor
}

func NewInterceptorRegistry() *InterceptorRegistry {
	return &InterceptorRegistry{
		interceptors: map[connectfactory.APIKind][]ConnectInterceptor{},
	}
}

func (r *InterceptorRegistry) Register(apiKind connectfactory.APIKind, interceptor ConnectInterceptor) {
	r.interceptors[apiKind] = append(r.interceptors[apiKind], interceptor)
}

// InterceptorsFor returns the interceptors whose API kind exactly matches
// that of the factory, in registration order.
func (r *InterceptorRegistry) InterceptorsFor(factory connectfactory.ConnectionFactory) []ConnectInterceptor {
	return r.interceptors[factory.APIKind()]
}
