package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/smartexpense/smartexpense/internal/middleware"
	"github.com/smartexpense/smartexpense/internal/models"
)

type createExpenseRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Date   string  `json:"date" validate:"required"`
	TypeID int64   `json:"type_id" validate:"required"`
	Note   *string `json:"note"`
}

// CreateExpense logs a manual expense
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	expense, err := h.svc.AddExpense(middleware.UserID(r), req.Amount, date, req.TypeID, req.Note)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

// ListExpenses returns a filtered, paginated expense listing
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := expenseFilterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.svc.ListExpenses(middleware.UserID(r), filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// DeleteExpense removes one expense
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}
	if err := h.svc.DeleteExpense(middleware.UserID(r), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

// CategorySummary breaks down a window's spend by category. Without
// dateFrom/dateTo it covers the current month.
func (h *Handler) CategorySummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	q := r.URL.Query()
	if raw := q.Get("dateFrom"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid dateFrom")
			return
		}
		from = parsed
	}
	if raw := q.Get("dateTo"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid dateTo")
			return
		}
		to = parsed
	}

	summary, err := h.svc.CategorySummary(middleware.UserID(r), from, to)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func expenseFilterFromQuery(r *http.Request) (models.ExpenseFilter, error) {
	var f models.ExpenseFilter
	q := r.URL.Query()

	if raw := q.Get("dateFrom"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if raw := q.Get("dateTo"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, err
		}
		f.DateTo = &t
	}
	if raw := q.Get("typeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, err
		}
		f.TypeID = &id
	}
	if raw := q.Get("minAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, err
		}
		f.MinAmount = &v
	}
	if raw := q.Get("maxAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, err
		}
		f.MaxAmount = &v
	}
	f.Search = q.Get("search")
	f.Sort = q.Get("sort")
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	return f, nil
}

// parseDate accepts both date-only and RFC 3339 timestamps
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
