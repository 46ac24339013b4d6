package slip

import "time"

// Category identifies the kind of transaction a slip proves.
type Category string

const (
	CategoryCash   Category = "cash"
	CategoryOnline Category = "online"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryCash || c == CategoryOnline
}

// Status represents the lifecycle state of a slip entry.
type Status string

const (
	StatusStaged    Status = "staged"
	StatusSubmitted Status = "submitted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// Entry is a single rider commission slip. It is created in the staged state
// by the intake coordinator and becomes submitted once persisted.
// Corresponds to the 'slips' table.
type Entry struct {
	ID            int64
	BranchCode    string
	RiderID       int64
	Category      Category
	Quantity      int
	TransactionID string // transaction ID for online slips, serial number for cash slips
	Fingerprint   Fingerprint
	StoredRef     string // opaque reference returned by the artifact store
	ManagerName   string
	WeekLabel     string
	Commission    int64 // minor currency units
	Status        Status
	SubmittedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
