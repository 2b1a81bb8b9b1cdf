package models

import "time"

// EMIType represents a per-user EMI category (home loan, car loan, ...)
type EMIType struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	EMICount  int       `json:"emi_count"`
	CreatedAt time.Time `json:"created_at"`
}
