package changereq

import (
	"context"
)

// Repository defines the operations for persisting and reviewing change
// requests.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	ListPending(ctx context.Context) ([]*Request, error)
	ListByBranch(ctx context.Context, branchCode string) ([]*Request, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}
