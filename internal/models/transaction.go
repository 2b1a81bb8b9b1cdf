package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TxLend   = "lend"
	TxBorrow = "borrow"
)

// Transaction represents money owed between the user and a person (khata
// entry). A settlement is stored as a transaction of the opposite type with
// ParentID pointing at the entry it settles.
type Transaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	PersonID      int64           `json:"person_id"`
	Type          string          `json:"type"` // lend or borrow
	Amount        decimal.Decimal `json:"amount"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
	Settled       bool            `json:"settled"`
	DueDate       *time.Time      `json:"due_date"`
	Note          *string         `json:"note"`
	ParentID      *int64          `json:"parent_id"`
	CreatedAt     time.Time       `json:"created_at"`

	Person      *Person       `json:"person,omitempty"`
	Settlements []Transaction `json:"settlements,omitempty"`
}

// Remaining returns the outstanding balance, never negative.
func (t *Transaction) Remaining() decimal.Decimal {
	remaining := t.Amount.Sub(t.SettledAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
