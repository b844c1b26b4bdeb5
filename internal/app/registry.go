package app

import (
	"context"
	"log"
	"sync"
	"time"
)

// Factory builds a fresh workspace
type Factory func() (*Controller, error)

// Registry holds open workspaces by ID and reclaims idle ones.
type Registry struct {
	factory Factory
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*Controller
}

// NewRegistry creates a registry. A ttl of zero keeps workspaces forever.
func NewRegistry(factory Factory, ttl time.Duration) *Registry {
	return &Registry{
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		items:   make(map[string]*Controller),
	}
}

// Open creates and registers a new workspace
func (r *Registry) Open() (*Controller, error) {
	c, err := r.factory()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.items[c.ID] = c
	r.mu.Unlock()
	return c, nil
}

// Get returns the workspace with id
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	return c, ok
}

// Close removes a workspace. It reports whether one was removed.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	return true
}

// Len returns the number of open workspaces
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep removes workspaces idle for longer than the TTL. Workspaces with a
// generation in flight are kept. It returns how many were removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, c := range r.items {
		if c.Pending() || c.LastActive().After(cutoff) {
			continue
		}
		delete(r.items, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("[session] reclaimed %d idle workspaces", n)
			}
		}
	}
}
