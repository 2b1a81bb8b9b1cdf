package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/smartexpense/smartexpense/internal/middleware"
)

// MonthlyReport returns the six-month spend trend
func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.MonthlyReport(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// CategoryReport breaks down one month's spend by category. Defaults to
// the current month.
func (h *Handler) CategoryReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()

	if m, err := queryInt(r, "month"); err != nil || (m != nil && (*m < 1 || *m > 12)) {
		respondError(w, http.StatusBadRequest, "Invalid month")
		return
	} else if m != nil {
		month = *m
	}
	if y, err := queryInt(r, "year"); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	} else if y != nil {
		year = *y
	}

	summary, err := h.svc.CategoryReport(middleware.UserID(r), time.Month(month), year)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// SummaryReport aggregates the reports page numbers
func (h *Handler) SummaryReport(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.SummaryReport(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// ExportExpenses streams every expense as a CSV attachment
func (h *Handler) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	csv, err := h.svc.ExportExpensesCSV(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	filename := fmt.Sprintf("expenses-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(csv)
}
