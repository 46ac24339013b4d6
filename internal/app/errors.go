package app

import (
	"fmt"

	"rider_slip_service/internal/domain/commission"
)

// Intake failure taxonomy. The first four are permanent for the given input
// and must not be retried unchanged; StorageError and RegistryError wrap
// transient collaborator failures and are the only kinds eligible for
// caller-directed retry.
var (
	ErrInvalidQuantity      = commission.ErrInvalidQuantity
	ErrInvalidTransactionID = commission.ErrInvalidTransactionID
	ErrMissingArtifact      = fmt.Errorf("slip artifact is required")
	ErrDuplicateArtifact    = fmt.Errorf("identical artifact already submitted for this scope")
	ErrInvalidWeek          = fmt.Errorf("week label is not an open reporting week")
)

// StorageError reports a failure of the external artifact store.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("artifact storage failed: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RegistryError reports a failure of the duplicate registry backend.
type RegistryError struct {
	Err error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("duplicate registry unavailable: %v", e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }
