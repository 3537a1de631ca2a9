package backend

import "fmt"

// Registry maps each Kind to its Backend. It is immutable after NewRegistry.
type Registry struct {
	backends map[Kind]Backend
	order    []Kind
}

// NewRegistry registers backends in the given order. A later backend of the same
// kind replaces an earlier one.
func NewRegistry(backends ...Backend) *Registry {
	r := &Registry{backends: make(map[Kind]Backend, len(backends))}
	for _, b := range backends {
		if b == nil {
			continue
		}
		if _, ok := r.backends[b.Kind()]; !ok {
			r.order = append(r.order, b.Kind())
		}
		r.backends[b.Kind()] = b
	}
	return r
}

// Get returns the backend registered for kind.
func (r *Registry) Get(kind Kind) (Backend, error) {
	b, ok := r.backends[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not configured", ErrUnknownBackend, kind)
	}
	return b, nil
}

// Kinds lists registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}
