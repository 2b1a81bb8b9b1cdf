package handler

import (
	"net/http"

	"github.com/smartexpense/smartexpense/internal/middleware"
)

// DashboardStats returns the headline dashboard numbers
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DashboardStats(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// DashboardReminders returns due-payment reminders, urgency-sorted
func (h *Handler) DashboardReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.DashboardReminders(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}

// CollectReminders returns lends due for collection within a week
func (h *Handler) CollectReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.CollectReminders(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}
