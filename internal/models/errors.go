package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateWebhook indicates a record for the webhook id already exists
	ErrDuplicateWebhook = errors.New("duplicate webhook")

	// ErrConflict indicates a unique constraint (username, email) was violated
	ErrConflict = errors.New("conflict")
)
