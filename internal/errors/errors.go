package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeInFlightConflict  = "IN_FLIGHT_CONFLICT"
	ErrCodeStore             = "STORE_ERROR"
	ErrCodeConfiguration     = "CONFIGURATION_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_TRANSITION")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewInvalidTransitionError creates a new INVALID_TRANSITION error.
// Raised when a session operation targets a card outside the state machine
// state the operation requires, e.g. recording a response for a hidden card.
func NewInvalidTransitionError(op, cardID, state string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("%s not allowed for card %s in state %s", op, cardID, state),
		Status:  409,
	}
}

// NewInFlightConflictError creates a new IN_FLIGHT_CONFLICT error.
// Raised when a card already has a persistence write pending.
func NewInFlightConflictError(cardID string) *AppError {
	return &AppError{
		Code:    ErrCodeInFlightConflict,
		Message: fmt.Sprintf("a write is already in flight for card %s", cardID),
		Status:  409,
	}
}

// NewStoreError wraps a persistence-layer failure
func NewStoreError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeStore,
		Message: "persistence operation failed",
		Status:  502,
		Err:     err,
	}
}

// NewConfigurationError creates a new CONFIGURATION_ERROR
func NewConfigurationError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Status:  500,
	}
}
