package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/smartexpense/smartexpense/internal/middleware"
	"github.com/smartexpense/smartexpense/internal/service"
)

type markPaidRequest struct {
	ItemType string  `json:"item_type" validate:"required,oneof=emi recurring"`
	ItemID   int64   `json:"item_id" validate:"required"`
	Month    int     `json:"month" validate:"required,min=1,max=12"`
	Year     int     `json:"year" validate:"required,min=2000"`
	PaidDate string  `json:"paid_date"`
	Note     *string `json:"note"`
}

// MarkPaid records one EMI/recurring cycle as paid and logs the expense
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req markPaidRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	paidDate := time.Now().UTC()
	if req.PaidDate != "" {
		parsed, err := parseDate(req.PaidDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid paid date")
			return
		}
		paidDate = parsed
	}

	result, err := h.svc.MarkPaid(middleware.UserID(r), service.MarkPaidInput{
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		Month:    req.Month,
		Year:     req.Year,
		PaidDate: paidDate,
		Note:     req.Note,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// ListPaidMarks returns paid marks, optionally narrowed to one cycle
func (h *Handler) ListPaidMarks(w http.ResponseWriter, r *http.Request) {
	month, err := queryInt(r, "month")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid month")
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	marks, err := h.svc.ListPaidMarks(middleware.UserID(r), month, year)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, marks)
}

// CheckPaid reports whether one (item, month, year) cycle is marked paid
func (h *Handler) CheckPaid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	itemType := q.Get("itemType")
	itemID, err := strconv.ParseInt(q.Get("itemId"), 10, 64)
	if err != nil || itemType == "" {
		respondError(w, http.StatusBadRequest, "itemType and itemId are required")
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid month")
		return
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	mark, paid, err := h.svc.CheckPaid(middleware.UserID(r), itemType, itemID, month, year)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"paid": paid, "paid_mark": mark})
}
