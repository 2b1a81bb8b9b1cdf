package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/smartexpense/internal/middleware"
)

type personRequest struct {
	Name string `json:"name" validate:"required"`
}

type transactionRequest struct {
	PersonID int64           `json:"person_id" validate:"required"`
	Type     string          `json:"type" validate:"required,oneof=lend borrow"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	DueDate  *string         `json:"due_date"`
	Note     *string         `json:"note"`
}

type settleRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"`
}

// CreatePerson adds a khata counterparty
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	person, err := h.svc.AddPerson(middleware.UserID(r), req.Name)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, person)
}

// ListPersons returns counterparties with net balances and the summary
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, summary, err := h.svc.ListPersons(middleware.UserID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"persons": persons,
		"summary": summary,
	})
}

// RenamePerson updates a counterparty's name
func (h *Handler) RenamePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid person ID")
		return
	}
	var req personRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	person, err := h.svc.RenamePerson(middleware.UserID(r), id, req.Name)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, person)
}

// DeletePerson removes a counterparty without khata history
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid person ID")
		return
	}
	if err := h.svc.DeletePerson(middleware.UserID(r), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

// CreateTransaction records a lend or borrow entry
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Amount.IsPositive() {
		respondError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := parseDate(*req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due date")
			return
		}
		dueDate = &parsed
	}

	tx, err := h.svc.AddTransaction(middleware.UserID(r), req.PersonID, req.Type, req.Amount, dueDate, req.Note)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

// ListTransactions returns all khata entries with settlements
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.svc.ListTransactions(middleware.UserID(r), nil)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// ListPersonTransactions returns one person's khata entries
func (h *Handler) ListPersonTransactions(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r, "personId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid person ID")
		return
	}
	transactions, err := h.svc.ListTransactions(middleware.UserID(r), &personID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// Settle applies a partial or full settlement to an entry
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}
	var req settleRequest
	if err := h.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	date := time.Now().UTC()
	if req.Date != nil && *req.Date != "" {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		date = parsed
	}

	settlement, err := h.svc.Settle(middleware.UserID(r), id, req.Amount, date)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settlement)
}

// DeleteEntry removes a khata entry, reversing or cascading settlements
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "entryId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}
	if err := h.svc.DeleteEntry(middleware.UserID(r), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

// CloseKhata clears a person's transaction history
func (h *Handler) CloseKhata(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r, "personId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid person ID")
		return
	}
	deleted, err := h.svc.CloseKhata(middleware.UserID(r), personID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
