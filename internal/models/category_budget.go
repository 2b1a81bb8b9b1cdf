package models

import "time"

// CategoryBudget represents a per-expense-type monthly budget cap
type CategoryBudget struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TypeID    int64     `json:"type_id"`
	TypeName  string    `json:"type_name,omitempty"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
