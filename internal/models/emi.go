package models

import "time"

// EMI represents a fixed monthly installment plan
type EMI struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	EMIType   string     `json:"emi_type"`
	DueDay    int        `json:"due_day"` // 1-31, clamped to month length
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	TotalEMIs int        `json:"total_emis"`
	CreatedAt time.Time  `json:"created_at"`
	PaidMarks []PaidMark `json:"paid_marks,omitempty"`

	// Derived on listing; NextDueAt is nil once every cycle is paid or
	// the plan has ended.
	NextDueAt     *time.Time `json:"next_due_at,omitempty"`
	NextDueInDays int        `json:"next_due_in_days,omitempty"`
	ShowMarkPaid  bool       `json:"show_mark_paid"`
}
