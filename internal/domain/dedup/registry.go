// Package dedup defines the duplicate-artifact registry contract. The
// registry is the only shared mutable state in the intake core; its
// check-and-insert must be atomic per scope so that two simultaneous
// submissions of the same artifact yield exactly one success.
package dedup

import (
	"context"
	"errors"
	"strconv"

	"rider_slip_service/internal/domain/slip"
)

// ErrAlreadyRecorded is returned by Record when the (scope, fingerprint)
// pair already exists.
var ErrAlreadyRecorded = errors.New("fingerprint already recorded for scope")

// ScopePolicy selects the key space within which duplicates are detected.
// This is an explicit deployment choice, never an accident of storage layout.
type ScopePolicy string

const (
	ScopeBranchRider ScopePolicy = "branch_rider" // default
	ScopeBranch      ScopePolicy = "branch"
	ScopeGlobal      ScopePolicy = "global"
)

// Valid reports whether p is a known policy.
func (p ScopePolicy) Valid() bool {
	return p == ScopeBranchRider || p == ScopeBranch || p == ScopeGlobal
}

// Scope identifies one duplicate-detection key space.
type Scope struct {
	BranchCode string
	RiderID    int64
}

// Key renders the stable storage key for the scope under the given policy.
func (s Scope) Key(policy ScopePolicy) string {
	switch policy {
	case ScopeBranch:
		return "branch:" + s.BranchCode
	case ScopeGlobal:
		return "global"
	default:
		return "branch:" + s.BranchCode + ":rider:" + strconv.FormatInt(s.RiderID, 10)
	}
}

// Registry tracks the fingerprints already accepted per scope key. Entries
// are permanent for the lifetime of the scope; there is no purge operation.
type Registry interface {
	// Seen reports whether the fingerprint was previously recorded for the
	// scope key.
	Seen(ctx context.Context, scopeKey string, fp slip.Fingerprint) (bool, error)

	// Record atomically checks-and-inserts the pair. It returns
	// ErrAlreadyRecorded if the pair exists; concurrent identical calls
	// produce exactly one success.
	Record(ctx context.Context, scopeKey string, fp slip.Fingerprint) error
}
