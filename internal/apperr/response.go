package apperr

import (
	stderrors "errors"
)

// RejectBody is the wire shape for pipeline rejections (401/403/429):
// a short error label plus a human-readable message.
type RejectBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageBody is the wire shape used by handler-level errors.
type MessageBody struct {
	Message string `json:"message"`
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
