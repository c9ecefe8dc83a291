package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeSignatureInvalid   = "signature_invalid"
	ErrCodeMalformedPayload   = "malformed_payload"
	ErrCodeUnknownAccount     = "unknown_account"
	ErrCodeAccountNotFound    = "account_not_found"
	ErrCodeSubAccountNotFound = "sub_account_not_found"
	ErrCodeNotSynced          = "not_synced"
	ErrCodeRemoteAPI          = "remote_api_error"
	ErrCodeInvalidAmount      = "invalid_amount"
	ErrCodeValidationFailed   = "validation_failed"
	ErrCodeConflict           = "conflict"
	ErrCodeInternalError      = "internal_error"
)

func internalError(message string, err error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternalError, Message: message, Err: err}
}
