package slip

import (
	"context"
	"fmt"
)

// ErrBadFingerprint is returned when a stored fingerprint cannot be decoded.
var ErrBadFingerprint = fmt.Errorf("malformed fingerprint")

// Repository defines the operations for persisting and retrieving slip entries.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id int64) (*Entry, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	ListByBranchAndWeek(ctx context.Context, branchCode, weekLabel string) ([]*Entry, error)
	ListByWeek(ctx context.Context, weekLabel string) ([]*Entry, error) // admin overview
}
