// Package store keeps one limiter per client key for callers that gate
// many independent clients, such as the HTTP middleware. Each key gets
// its own bucket; there is no coordination between them.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yourusername/gatelimit/pkg/gatelimit"
)

var (
	// ErrInvalidKey is returned when the client key is empty.
	ErrInvalidKey = errors.New("client key cannot be empty")

	// ErrNilFactory is returned when a registry is created without a
	// limiter factory.
	ErrNilFactory = errors.New("limiter factory cannot be nil")
)

// Factory builds the limiter used for a key seen for the first time.
type Factory func() (*gatelimit.Limiter, error)

// Registry is a thread-safe map of client keys to limiters. Limiters are
// created lazily through the factory on first use.
type Registry struct {
	mu       sync.RWMutex
	limiters map[string]*gatelimit.Limiter
	factory  Factory
}

// NewRegistry creates a registry that builds per-key limiters with the
// given factory.
func NewRegistry(factory Factory) (*Registry, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	return &Registry{
		limiters: make(map[string]*gatelimit.Limiter),
		factory:  factory,
	}, nil
}

// Get returns the limiter for key, creating it on first use.
func (r *Registry) Get(key string) (*gatelimit.Limiter, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	// Fast path: limiter already exists.
	r.mu.RLock()
	l, ok := r.limiters[key]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check: another goroutine might have created it while we
	// waited for the write lock.
	if l, ok = r.limiters[key]; ok {
		return l, nil
	}

	l, err := r.factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create limiter for key %q: %w", key, err)
	}
	r.limiters[key] = l
	return l, nil
}

// Delete removes the limiter for key, if any.
func (r *Registry) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.limiters, key)
}

// Clear removes all limiters.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limiters = make(map[string]*gatelimit.Limiter)
}

// Count returns the number of limiters in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.limiters)
}
