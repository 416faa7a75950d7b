package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service and HTTP layers.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodePermission      = "PERMISSION_DENIED"
	CodeDuplicateKey    = "DUPLICATE_KEY"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	// Next carries the continuation URL for unauthenticated requests so
	// clients can resume the operation after logging in.
	Next string `json:"next,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	Next    string
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

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewValidationError reports a payload that fails field constraints. The
// caller's input is never modified, so it remains available for re-editing.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewPermissionDeniedError reports an actor mutating a resource they do
// not own.
func NewPermissionDeniedError(message string) *AppError {
	return &AppError{
		Code:    CodePermission,
		Message: message,
	}
}

// NewDuplicateKeyError reports a unique constraint violation.
func NewDuplicateKeyError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeDuplicateKey,
		Message: message,
		Err:     err,
	}
}

// NewUnauthenticatedError reports a missing actor identity. next is the
// URL of the operation the caller should be returned to after login.
func NewUnauthenticatedError(next string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: "Authentication required",
		Next:    next,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}

// StatusForError maps an error to the HTTP status it should be rendered with.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeValidation, CodeDuplicateKey:
		return fiber.StatusBadRequest
	case CodePermission:
		return fiber.StatusForbidden
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
			Next:  appErr.Next,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
