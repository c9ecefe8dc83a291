package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/benx421/proxy-ledger/internal/service"
)

const maxRequestBody = 1 << 20

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // headers already sent
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service failure to its HTTP status
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
		return
	}

	status := statusForCode(svcErr.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "code", svcErr.Code, "error", err)
	}

	message := svcErr.Message
	if svcErr.Code == service.ErrCodeInternalError {
		message = "internal error"
	}
	writeError(w, status, svcErr.Code, message)
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeValidationFailed, service.ErrCodeInvalidAmount, service.ErrCodeMalformedPayload:
		return http.StatusBadRequest
	case service.ErrCodeSignatureInvalid:
		return http.StatusForbidden
	case service.ErrCodeAccountNotFound, service.ErrCodeSubAccountNotFound, service.ErrCodeUnknownAccount:
		return http.StatusNotFound
	case service.ErrCodeConflict, service.ErrCodeNotSynced:
		return http.StatusConflict
	case service.ErrCodeRemoteAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// decodeBody reads a bounded JSON request body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}
