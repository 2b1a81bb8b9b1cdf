package handler

import (
	"net/http"

	"github.com/smartexpense/smartexpense/internal/middleware"
	"github.com/smartexpense/smartexpense/internal/service"
)

type recurringRequest struct {
	Name   string  `json:"name" validate:"required"`
	Type   string  `json:"type" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	DueDay int     `json:"due_day" validate:"required,min=1,max=31"`
}

func (req *recurringRequest) toInput() service.RecurringInput {
	return service.RecurringInput{
		Name:   req.Name,
		Type:   req.Type,
		Amount: req.Amount,
		DueDay: req.DueDay,
	}
}

// CreateRecurring creates an open-ended monthly obligation
func (h *Handler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req recurringRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := h.svc.CreateRecurring(middleware.UserID(r), req.toInput())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// ListRecurring returns recurring payments with next-due decorations
func (h *Handler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListRecurring(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// UpdateRecurring edits a recurring payment
func (h *Handler) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid recurring payment ID")
		return
	}
	var req recurringRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := h.svc.UpdateRecurring(middleware.UserID(r), id, req.toInput())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// DeleteRecurring removes a recurring payment and its paid marks
func (h *Handler) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid recurring payment ID")
		return
	}
	if err := h.svc.DeleteRecurring(middleware.UserID(r), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
