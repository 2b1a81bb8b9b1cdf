package models

import "time"

// Item types a paid mark can reference
const (
	ItemEMI       = "emi"
	ItemRecurring = "recurring"
)

// PaidMark records that one (item, month, year) cycle was paid. At most one
// mark exists per cycle; ExpenseID links the expense created alongside it.
type PaidMark struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemType  string    `json:"item_type"` // emi or recurring
	ItemID    int64     `json:"item_id"`
	Month     int       `json:"month"` // 1-12
	Year      int       `json:"year"`
	PaidDate  time.Time `json:"paid_date"`
	Note      *string   `json:"note"`
	ExpenseID int64     `json:"expense_id"`
	CreatedAt time.Time `json:"created_at"`
}
