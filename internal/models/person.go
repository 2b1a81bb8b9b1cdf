package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person represents a khata counterparty
type Person struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Derived on listing: outstanding lends minus outstanding borrows.
	NetBalance  decimal.Decimal `json:"net_balance"`
	LendCount   int             `json:"lend_count"`
	BorrowCount int             `json:"borrow_count"`
}
