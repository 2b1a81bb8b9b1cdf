package handler

import (
	"net/http"

	"github.com/smartexpense/smartexpense/internal/middleware"
	"github.com/smartexpense/smartexpense/internal/service"
)

type emiRequest struct {
	Name      string  `json:"name" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	EMIType   string  `json:"emi_type" validate:"required"`
	DueDay    int     `json:"due_day" validate:"required,min=1,max=31"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
}

func (req *emiRequest) toInput() (service.EMIInput, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return service.EMIInput{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return service.EMIInput{}, err
	}
	return service.EMIInput{
		Name:      req.Name,
		Amount:    req.Amount,
		EMIType:   req.EMIType,
		DueDay:    req.DueDay,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// CreateEMI creates an installment plan
func (h *Handler) CreateEMI(w http.ResponseWriter, r *http.Request) {
	var req emiRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	emi, err := h.svc.CreateEMI(middleware.UserID(r), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, emi)
}

// ListEMIs returns the user's EMIs with paid marks
func (h *Handler) ListEMIs(w http.ResponseWriter, r *http.Request) {
	emis, err := h.svc.ListEMIs(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emis)
}

// GetEMI returns one EMI with its full installment schedule
func (h *Handler) GetEMI(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid EMI ID")
		return
	}
	detail, err := h.svc.EMIDetail(middleware.UserID(r), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// UpdateEMI edits an installment plan
func (h *Handler) UpdateEMI(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid EMI ID")
		return
	}
	var req emiRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	emi, err := h.svc.UpdateEMI(middleware.UserID(r), id, in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emi)
}

// DeleteEMI removes an EMI and its paid marks
func (h *Handler) DeleteEMI(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid EMI ID")
		return
	}
	if err := h.svc.DeleteEMI(middleware.UserID(r), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
