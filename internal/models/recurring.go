package models

import "time"

// RecurringPayment represents an open-ended monthly obligation (rent,
// subscriptions, ...). Unlike an EMI it has no end date or fixed count.
type RecurringPayment struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Amount    float64    `json:"amount"`
	DueDay    int        `json:"due_day"`
	CreatedAt time.Time  `json:"created_at"`
	PaidMarks []PaidMark `json:"paid_marks,omitempty"`

	// Derived on listing
	NextDueAt     *time.Time `json:"next_due_at,omitempty"`
	NextDueInDays int        `json:"next_due_in_days,omitempty"`
	ShowMarkPaid  bool       `json:"show_mark_paid"`
}
