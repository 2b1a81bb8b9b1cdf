package models

import "time"

// Expense represents a single logged expense
type Expense struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	TypeID   int64     `json:"type_id"`
	TypeName string    `json:"type_name,omitempty"`
	Note     *string   `json:"note"`
	// Source is set when the expense was created by marking an EMI or
	// recurring payment as paid; empty for manual entries.
	Source    string    `json:"source,omitempty"`
	SourceID  *int64    `json:"source_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpenseFilter narrows expense listings
type ExpenseFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	TypeID    *int64
	Search    string
	MinAmount *float64
	MaxAmount *float64
	Sort      string // date_desc, date_asc, amount_desc, amount_asc
	Page      int
	Limit     int
}

// ExpensePage is a paginated expense listing
type ExpensePage struct {
	Items      []Expense  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
