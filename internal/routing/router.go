package routing

import "github.com/ai-gateway/chat-relay/internal/provider"

// Router maps service names to providers.
//
// Unknown names are not an error: they resolve to the default provider,
// which is the first one registered. ProviderFor therefore never fails once
// a provider has been registered.
type Router struct {
	names     []string
	providers map[string]provider.Provider
}

func New() *Router {
	return &Router{providers: make(map[string]provider.Provider)}
}

// Register associates a service name with a provider implementation.
func (r *Router) Register(name string, p provider.Provider) {
	if _, ok := r.providers[name]; !ok {
		r.names = append(r.names, name)
	}
	r.providers[name] = p
}

// ProviderFor returns the provider for a service or the default provider.
func (r *Router) ProviderFor(service string) provider.Provider {
	if p, ok := r.providers[service]; ok {
		return p
	}
	if len(r.names) == 0 {
		return nil
	}
	return r.providers[r.names[0]]
}

// Services lists registered service names in registration order.
func (r *Router) Services() []string {
	return append([]string(nil), r.names...)
}
