package models

import "time"

// ExpenseType represents a per-user expense category
type ExpenseType struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Icon         *string   `json:"icon"`
	IsDefault    bool      `json:"is_default"`
	ExpenseCount int       `json:"expense_count"`
	CreatedAt    time.Time `json:"created_at"`
}
