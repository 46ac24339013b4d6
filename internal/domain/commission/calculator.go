// Package commission computes the amount owed for a slip and validates the
// category-specific transaction identifier that gates the computation.
package commission

import (
	"fmt"
	"strings"

	"rider_slip_service/internal/domain/slip"
)

var (
	ErrInvalidQuantity      = fmt.Errorf("quantity must be a positive integer")
	ErrInvalidTransactionID = fmt.Errorf("transaction identifier is invalid for the slip category")
	ErrUnknownCategory      = fmt.Errorf("unknown slip category")
)

// minOnlineTransactionIDLen is the minimum digit count for online
// transaction IDs.
const minOnlineTransactionIDLen = 8

// RateTable holds the per-slip commission rate for each category, in minor
// currency units. The table is deployment configuration, never hard-coded at
// call sites.
type RateTable struct {
	CashPerSlip   int64
	OnlinePerSlip int64
}

// Rate returns the per-slip rate for the category.
func (t RateTable) Rate(category slip.Category) (int64, error) {
	switch category {
	case slip.CategoryCash:
		return t.CashPerSlip, nil
	case slip.CategoryOnline:
		return t.OnlinePerSlip, nil
	default:
		return 0, ErrUnknownCategory
	}
}

// ValidateQuantity checks that quantity is a positive integer.
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Calculate returns quantity * rate(category) in minor currency units.
// The result is deterministic and non-negative; quantity must be >= 1.
func Calculate(table RateTable, category slip.Category, quantity int) (int64, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return 0, err
	}
	rate, err := table.Rate(category)
	if err != nil {
		return 0, err
	}
	return int64(quantity) * rate, nil
}

// ValidateTransactionID checks the identifier against the category rule:
// online slips carry a digits-only transaction ID of at least eight digits,
// cash slips carry any non-empty serial number.
func ValidateTransactionID(category slip.Category, id string) error {
	id = strings.TrimSpace(id)
	switch category {
	case slip.CategoryOnline:
		if len(id) < minOnlineTransactionIDLen {
			return ErrInvalidTransactionID
		}
		for _, r := range id {
			if r < '0' || r > '9' {
				return ErrInvalidTransactionID
			}
		}
		return nil
	case slip.CategoryCash:
		if id == "" {
			return ErrInvalidTransactionID
		}
		return nil
	default:
		return ErrUnknownCategory
	}
}
