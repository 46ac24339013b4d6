// Package memdedup provides an in-memory duplicate registry, used in tests
// and in single-process deployments without a database.
package memdedup

import (
	"context"
	"sync"

	"rider_slip_service/internal/domain/dedup"
	"rider_slip_service/internal/domain/slip"
)

// Registry implements dedup.Registry with per-scope locking: the outer mutex
// only guards the scope map, while check-and-insert serializes on the scope's
// own mutex.
type Registry struct {
	mu     sync.Mutex
	scopes map[string]*scopeSet
}

type scopeSet struct {
	mu           sync.Mutex
	fingerprints map[slip.Fingerprint]struct{}
}

func NewRegistry() *Registry {
	return &Registry{scopes: make(map[string]*scopeSet)}
}

func (r *Registry) scope(key string) *scopeSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scopes[key]
	if !ok {
		s = &scopeSet{fingerprints: make(map[slip.Fingerprint]struct{})}
		r.scopes[key] = s
	}
	return s
}

func (r *Registry) Seen(ctx context.Context, scopeKey string, fp slip.Fingerprint) (bool, error) {
	s := r.scope(scopeKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.fingerprints[fp]
	return ok, nil
}

func (r *Registry) Record(ctx context.Context, scopeKey string, fp slip.Fingerprint) error {
	s := r.scope(scopeKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fingerprints[fp]; ok {
		return dedup.ErrAlreadyRecorded
	}
	s.fingerprints[fp] = struct{}{}
	return nil
}
