package models

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(resource string, key interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v не найден", resource, key),
	}
}

func NewUnauthenticatedError() *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: "требуется авторизация",
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewValidationError reports a problem with a single form field.
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Field:   field,
		Message: message,
	}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func IsUnauthenticated(err error) bool {
	return hasCode(err, CodeUnauthenticated)
}

func IsForbidden(err error) bool {
	return hasCode(err, CodeForbidden)
}

func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}
