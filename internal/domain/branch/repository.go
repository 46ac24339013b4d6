package branch

import (
	"context"
)

// Repository defines the operations for persisting and retrieving branches
// and their riders.
type Repository interface {
	Create(ctx context.Context, b *Branch) error
	GetByCode(ctx context.Context, code string) (*Branch, error)
	ListAll(ctx context.Context) ([]*Branch, error)

	AddRider(ctx context.Context, r *Rider) error
	GetRiderByID(ctx context.Context, id int64) (*Rider, error)
	ListRiders(ctx context.Context, branchCode string) ([]*Rider, error)
}
