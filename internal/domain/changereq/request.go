package changereq

import "time"

// Status represents the review state of a change request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is a free-text amendment request raised by a branch manager.
// Corresponds to the 'change_requests' table.
type Request struct {
	ID          int64
	BranchCode  string
	SubmittedBy string
	Message     string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
