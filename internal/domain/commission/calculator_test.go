package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rider_slip_service/internal/domain/slip"
)

var testRates = RateTable{CashPerSlip: 1000, OnlinePerSlip: 1200}

func TestCalculate(t *testing.T) {
	cash, err := Calculate(testRates, slip.CategoryCash, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5000), cash)

	online, err := Calculate(testRates, slip.CategoryOnline, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(6000), online)

	assert.NotEqual(t, cash, online, "categories with different rates must differ")
}

func TestCalculateRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1, -100} {
		_, err := Calculate(testRates, slip.CategoryCash, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", qty)
	}
}

func TestCalculateRejectsUnknownCategory(t *testing.T) {
	_, err := Calculate(testRates, slip.Category("voucher"), 1)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestValidateTransactionIDOnline(t *testing.T) {
	assert.NoError(t, ValidateTransactionID(slip.CategoryOnline, "12345678"))
	assert.NoError(t, ValidateTransactionID(slip.CategoryOnline, "000123456789"))

	invalid := []string{"", "abc", "1234567", "12345abc", "12 345 678"}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidateTransactionID(slip.CategoryOnline, id), ErrInvalidTransactionID, "id %q", id)
	}
}

func TestValidateTransactionIDCash(t *testing.T) {
	assert.NoError(t, ValidateTransactionID(slip.CategoryCash, "SN-0042"))
	assert.NoError(t, ValidateTransactionID(slip.CategoryCash, "x"))

	assert.ErrorIs(t, ValidateTransactionID(slip.CategoryCash, ""), ErrInvalidTransactionID)
	assert.ErrorIs(t, ValidateTransactionID(slip.CategoryCash, "   "), ErrInvalidTransactionID)
}
