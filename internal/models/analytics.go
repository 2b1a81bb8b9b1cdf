package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats represents the headline numbers on the dashboard
type DashboardStats struct {
	ThisMonthSpend float64         `json:"this_month_spend"`
	LastMonthSpend float64         `json:"last_month_spend"`
	DeltaPercent   float64         `json:"delta_percent"`
	MonthlyBudget  *float64        `json:"monthly_budget"`
	ToCollect      decimal.Decimal `json:"to_collect"`
	ToPay          decimal.Decimal `json:"to_pay"`
	FixedOutflow   float64         `json:"fixed_outflow"` // EMI + recurring per month
}

// Reminder represents one due-payment reminder on the dashboard
type Reminder struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"` // emi, recurring or borrow
	Title   string    `json:"title"`
	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"due_date"`
	Urgency int       `json:"urgency"` // 0 overdue, 1 today, 2 within 3 days, 3 later
}

// CollectReminder represents a lend due for collection within a week
type CollectReminder struct {
	ID         int64           `json:"id"`
	PersonName string          `json:"person_name"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
	DueInDays  int             `json:"due_in_days"`
}

// CategorySummary represents one slice of the per-category spend breakdown
type CategorySummary struct {
	TypeID      int64   `json:"type_id"`
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
	Percentage  float64 `json:"percentage"`
}

// MonthlyExpensePoint represents one month in the spend trend report
type MonthlyExpensePoint struct {
	Month string  `json:"month"` // Format: Jan 06
	Total float64 `json:"total"`
}

// MonthlyEMIPoint represents the EMI load for one calendar month
type MonthlyEMIPoint struct {
	Month string  `json:"month"` // Format: YYYY-MM
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// ReportSummary aggregates the reports page numbers
type ReportSummary struct {
	MonthlyEMI     []MonthlyEMIPoint `json:"monthly_emi"`
	TotalEMI       float64           `json:"total_emi"`
	TotalRecurring float64           `json:"total_recurring"`
}

// KhataSummary represents outstanding lend/borrow totals
type KhataSummary struct {
	Owed decimal.Decimal `json:"owed"`
	Owe  decimal.Decimal `json:"owe"`
	Net  decimal.Decimal `json:"net"`
}
