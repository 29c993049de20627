package apperror

import (
	"errors"
	"math"
	"net/http"
	"time"
)

// AppError is an error that knows its HTTP status. Errors lists per-field
// validation failures; Details carries structured data such as stock shortfalls.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details interface{}  `json:"details,omitempty"`

	// RetryAfter is sent as the Retry-After header when set
	RetryAfter time.Duration `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	// Manager session
	ErrInvalidPIN   = &AppError{Code: http.StatusUnauthorized, Message: "Invalid PIN"}
	ErrInvalidToken = &AppError{Code: http.StatusUnauthorized, Message: "Invalid or expired session token"}

	// Checkout
	ErrEmptyCart           = &AppError{Code: http.StatusUnprocessableEntity, Message: "Cart is empty"}
	ErrInsufficientPayment = &AppError{Code: http.StatusUnprocessableEntity, Message: "Paid amount is less than the grand total"}

	// Backup
	ErrInvalidBackup = &AppError{Code: http.StatusBadRequest, Message: "Invalid backup file"}
)

func newError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewValidationError creates a 422 error listing every failing field
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shorthand for a validation error on a single field
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError reports a missing resource, e.g. NewNotFoundError("Product")
func NewNotFoundError(resource string) *AppError {
	return newError(http.StatusNotFound, resource+" not found")
}

func NewConflictError(message string) *AppError {
	return newError(http.StatusConflict, message)
}

func NewBadRequestError(message string) *AppError {
	return newError(http.StatusBadRequest, message)
}

// NewStockShortfallError reports lines whose quantity exceeds the stock on hand.
// The checkout may be retried with an explicit confirmation.
func NewStockShortfallError(details interface{}) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: "Insufficient stock, confirmation required",
		Details: details,
	}
}

// NewTooManyAttemptsError rejects a request until retryAfter has passed
func NewTooManyAttemptsError(message string, retryAfter time.Duration) *AppError {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	return &AppError{
		Code:       http.StatusTooManyRequests,
		Message:    message,
		Details:    map[string]int{"retry_after_seconds": seconds},
		RetryAfter: retryAfter,
	}
}

// GetAppError unwraps err to an AppError. Anything else is a 500.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return newError(http.StatusInternalServerError, err.Error())
}
