package handler

import (
	"net/http"

	"github.com/smartexpense/smartexpense/internal/middleware"
	"github.com/smartexpense/smartexpense/internal/models"
)

type settingsRequest struct {
	Email             string   `json:"email" validate:"required,email"`
	Currency          string   `json:"currency" validate:"required"`
	MonthlyBudget     *float64 `json:"monthly_budget" validate:"omitempty,gt=0"`
	DarkMode          string   `json:"dark_mode" validate:"required,oneof=auto light dark"`
	EmailReminders    bool     `json:"email_reminders"`
	ReminderFrequency string   `json:"reminder_frequency" validate:"required,oneof=daily 3_days_before weekly"`
}

type budgetRequest struct {
	TypeID int64   `json:"type_id" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// GetSettings returns the user's preferences
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings saves the user's preferences
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := h.svc.UpdateSettings(middleware.UserID(r), &models.Settings{
		Email:             req.Email,
		Currency:          req.Currency,
		MonthlyBudget:     req.MonthlyBudget,
		DarkMode:          req.DarkMode,
		EmailReminders:    req.EmailReminders,
		ReminderFrequency: req.ReminderFrequency,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// ListCategoryBudgets returns budget caps with this month's spend
func (h *Handler) ListCategoryBudgets(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.CategoryBudgetProgress(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// SetCategoryBudget creates or replaces the cap for one category
func (h *Handler) SetCategoryBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	budget, err := h.svc.SetCategoryBudget(middleware.UserID(r), req.TypeID, req.Amount)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}
