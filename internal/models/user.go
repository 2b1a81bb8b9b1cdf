package models

import "time"

// User represents an application user and their preferences
type User struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"` // Not serialized
	Currency          string    `json:"currency"`
	MonthlyBudget     *float64  `json:"monthly_budget"`
	DarkMode          string    `json:"dark_mode"` // auto, light or dark
	EmailReminders    bool      `json:"email_reminders"`
	ReminderFrequency string    `json:"reminder_frequency"` // daily, 3_days_before or weekly
	CreatedAt         time.Time `json:"created_at"`
}

// Settings is the user-editable subset of User
type Settings struct {
	Email             string   `json:"email"`
	Currency          string   `json:"currency"`
	MonthlyBudget     *float64 `json:"monthly_budget"`
	DarkMode          string   `json:"dark_mode"`
	EmailReminders    bool     `json:"email_reminders"`
	ReminderFrequency string   `json:"reminder_frequency"`
}
