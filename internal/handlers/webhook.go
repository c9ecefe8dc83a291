package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/benx421/proxy-ledger/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

type webhookErrorResponse struct {
	Error string `json:"error"`
}

// HandlePaymentWebhook handles POST /webhook/payment
func (h *Handler) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, webhookErrorResponse{Error: "Payload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, webhookErrorResponse{Error: "Unreadable body"})
		return
	}

	result, err := h.webhooks.HandleDelivery(r.Context(), body, r.Header.Get(service.SignatureHeader))
	if err != nil {
		if svcErr := extractServiceError(err); svcErr != nil && svcErr.Code == service.ErrCodeSignatureInvalid {
			writeJSON(w, http.StatusForbidden, webhookErrorResponse{Error: "Invalid signature"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, webhookErrorResponse{Error: "Webhook processing failed"})
		return
	}

	if result.Outcome == service.OutcomeDuplicate {
		writeJSON(w, http.StatusOK, messageResponse{Message: "Webhook already processed"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Webhook processed successfully"})
}
