package handlers

import (
	"net/http"

	"github.com/benx421/proxy-ledger/internal/service"
)

// GetAccount handles GET /api/v1/accounts/{id}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	account, err := h.ledger.GetAccount(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// ListTransactions handles GET /api/v1/accounts/{id}/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	txns, err := h.ledger.ListTransactions(r.Context(), id, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": txns})
}

// CreateCharge handles POST /api/v1/accounts/{id}/charges
func (h *Handler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	var input service.ChargeInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	result, err := h.ledger.Charge(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
