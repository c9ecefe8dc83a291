package handlers

import (
	"net/http"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/benx421/proxy-ledger/internal/repository"
	"github.com/benx421/proxy-ledger/internal/service"
)

type subAccountResponse struct {
	*models.SubAccount
	Sync models.SyncStatus `json:"sync"`
}

func newSubAccountResponse(sub *models.SubAccount) subAccountResponse {
	return subAccountResponse{SubAccount: sub, Sync: sub.SyncStatus()}
}

type addTrafficRequest struct {
	Traffic int64 `json:"traffic"`
}

// CreateSubAccount handles POST /api/v1/accounts/{id}/sub-accounts
func (h *Handler) CreateSubAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	var input service.CreateSubAccountInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	sub, err := h.subAccounts.Create(r.Context(), accountID, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newSubAccountResponse(sub))
}

// ListSubAccounts handles GET /api/v1/sub-accounts
func (h *Handler) ListSubAccounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.SubAccountFilter{
		Search: q.Get("search"),
		Status: models.SubAccountStatus(q.Get("status")),
	}

	if raw := q.Get("account_id"); raw != "" {
		accountID, err := queryInt(r, "account_id")
		if err != nil || accountID <= 0 {
			writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, "invalid account_id")
			return
		}
		filter.AccountID = int64(accountID)
	}

	subs, err := h.subAccounts.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	items := make([]subAccountResponse, 0, len(subs))
	for i := range subs {
		items = append(items, newSubAccountResponse(&subs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sub_accounts": items})
}

// GetSubAccount handles GET /api/v1/sub-accounts/{id}
func (h *Handler) GetSubAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	details, err := h.subAccounts.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// UpdateSubAccount handles PUT /api/v1/sub-accounts/{id}
func (h *Handler) UpdateSubAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	var input service.UpdateSubAccountInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	sub, err := h.subAccounts.Update(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSubAccountResponse(sub))
}

// DeleteSubAccount handles DELETE /api/v1/sub-accounts/{id}
func (h *Handler) DeleteSubAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	if err := h.subAccounts.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTraffic handles POST /api/v1/sub-accounts/{id}/traffic
func (h *Handler) AddTraffic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	var req addTrafficRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidationFailed, err.Error())
		return
	}

	resp, err := h.subAccounts.AddTraffic(r.Context(), id, req.Traffic)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"remote": resp.Data})
}

// GetResellerBalance handles GET /api/v1/reseller/balance
func (h *Handler) GetResellerBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.subAccounts.ResellerBalance(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"balance": resp.Data})
}
