package handler

import (
	"net/http"

	"github.com/smartexpense/smartexpense/internal/middleware"
)

type createTypeRequest struct {
	Name string  `json:"name" validate:"required"`
	Icon *string `json:"icon"`
}

type renameTypeRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListExpenseTypes returns expense categories with usage counts
func (h *Handler) ListExpenseTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListExpenseTypes(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// CreateExpenseType adds a custom expense category
func (h *Handler) CreateExpenseType(w http.ResponseWriter, r *http.Request) {
	var req createTypeRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.AddExpenseType(middleware.UserID(r), req.Name, req.Icon)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// RenameExpenseType renames an expense category
func (h *Handler) RenameExpenseType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid type ID")
		return
	}
	var req renameTypeRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.RenameExpenseType(middleware.UserID(r), id, req.Name)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// DeleteExpenseType removes an unused expense category
func (h *Handler) DeleteExpenseType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid type ID")
		return
	}
	if err := h.svc.DeleteExpenseType(middleware.UserID(r), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

// ListEMITypes returns EMI categories with usage counts
func (h *Handler) ListEMITypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListEMITypes(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// CreateEMIType adds a custom EMI category
func (h *Handler) CreateEMIType(w http.ResponseWriter, r *http.Request) {
	var req createTypeRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.AddEMIType(middleware.UserID(r), req.Name)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// RenameEMIType renames an EMI category, cascading the name to its EMIs
func (h *Handler) RenameEMIType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid type ID")
		return
	}
	var req renameTypeRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.RenameEMIType(middleware.UserID(r), id, req.Name)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// DeleteEMIType removes an unused EMI category
func (h *Handler) DeleteEMIType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid type ID")
		return
	}
	if err := h.svc.DeleteEMIType(middleware.UserID(r), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
