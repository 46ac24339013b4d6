// Package artifact defines the external store for uploaded slip images.
package artifact

import "context"

// StoredRef is an opaque reference to a persisted artifact, usable later for
// retrieval by whatever backend produced it.
type StoredRef string

// Store persists raw artifact bytes. Implementations must be safe to retry
// on transient failure; callers never learn retry details.
type Store interface {
	// Store writes the artifact and returns its reference. scopeHint groups
	// related artifacts (e.g. per branch/rider) and filename is advisory
	// only; identity is carried by the content fingerprint, not the name.
	Store(ctx context.Context, data []byte, scopeHint, filename string) (StoredRef, error)
}
