package branch

import "time"

// Branch represents a branch office identified by its login code.
type Branch struct {
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rider is a delivery rider attached to a branch.
type Rider struct {
	ID         int64
	BranchCode string
	Name       string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
