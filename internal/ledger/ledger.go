// Package ledger holds the settlement arithmetic for khata transactions.
// The repository executes the resulting multi-row effect atomically.
package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/smartexpense/internal/models"
)

// ErrInvalidSettlement is returned when a settle amount is non-positive or
// exceeds the remaining balance.
var ErrInvalidSettlement = errors.New("invalid settlement amount")

// Settlement is the computed effect of settling against a transaction.
type Settlement struct {
	Amount       decimal.Decimal // amount being applied
	Type         string          // direction of the settlement entry
	NewSettled   decimal.Decimal // parent settledAmount after applying
	FullySettled bool            // parent settled flag after applying
}

// Opposite returns the reverse lend/borrow direction.
func Opposite(txType string) string {
	if txType == models.TxLend {
		return models.TxBorrow
	}
	return models.TxLend
}

// Plan validates a requested settlement against the parent entry. A nil
// request means settle the remaining balance in full.
func Plan(parent *models.Transaction, requested *decimal.Decimal) (Settlement, error) {
	remaining := parent.Remaining()

	amount := remaining
	if requested != nil {
		amount = *requested
	}
	if !amount.IsPositive() || amount.GreaterThan(remaining) {
		return Settlement{}, ErrInvalidSettlement
	}

	newSettled := parent.SettledAmount.Add(amount)
	return Settlement{
		Amount:       amount,
		Type:         Opposite(parent.Type),
		NewSettled:   newSettled,
		FullySettled: newSettled.GreaterThanOrEqual(parent.Amount),
	}, nil
}

// Reverse computes the parent's state after a settlement entry of the given
// amount is deleted. The settled flag is re-derived from the decremented
// amount rather than cleared outright, so deleting one of several partial
// settlements leaves a still-covered balance marked settled.
func Reverse(parent *models.Transaction, childAmount decimal.Decimal) (newSettled decimal.Decimal, settled bool) {
	newSettled = parent.SettledAmount.Sub(childAmount)
	if newSettled.IsNegative() {
		newSettled = decimal.Zero
	}
	return newSettled, newSettled.GreaterThanOrEqual(parent.Amount)
}
