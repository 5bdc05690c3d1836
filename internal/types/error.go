// error.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package types

import "fmt"

// Error type tags surfaced in the JSON error envelope.
const (
	ErrTypeAuthorization = "whiteboard.authorization.user"
	ErrTypeValidation    = "whiteboard.validation"
	ErrTypeNotFound      = "whiteboard.notfound"
)

// CustomError is a classified error carried from services/middleware up to the
// global error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Unauthorized builds a 401 authorization error.
func Unauthorized(message string) *CustomError {
	return &CustomError{Code: 401, Message: message, Type: ErrTypeAuthorization}
}

// Validation builds a 400 validation error for a single failed constraint.
func Validation(field, message string) *CustomError {
	return &CustomError{Code: 400, Message: fmt.Sprintf("%s: %s", field, message), Type: ErrTypeValidation}
}

// NotFound builds the conflated not-found-or-unauthorized 404. Callers never
// learn whether the row exists under another owner.
func NotFound(entity string) *CustomError {
	return &CustomError{Code: 404, Message: fmt.Sprintf("%s not found", entity), Type: ErrTypeNotFound}
}
