package state

import "sync"

// Registry hands out one Store per scope key, creating it lazily. The
// portals are multi-tenant: every company and every professional works
// against its own isolated view, so residual list contents from one tenant
// never surface in another's responses.
type Registry[T any] struct {
	mu      sync.Mutex
	factory func() *Store[T]
	stores  map[string]*Store[T]
}

// NewRegistry creates a registry. factory builds a fresh store for a scope
// on first use.
func NewRegistry[T any](factory func() *Store[T]) *Registry[T] {
	return &Registry[T]{
		factory: factory,
		stores:  map[string]*Store[T]{},
	}
}

// For returns the store for one scope key, creating it on first use. The
// same key always yields the same store.
func (r *Registry[T]) For(scope string) *Store[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stores[scope]
	if !ok {
		st = r.factory()
		r.stores[scope] = st
	}
	return st
}
