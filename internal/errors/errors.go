// Package errors provides custom error types for the Bank of Quack API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Settings errors.
var (
	ErrUnknownUserName    = &AppError{Code: "UNKNOWN_USER_NAME", Message: "Name does not match either household user", StatusCode: http.StatusBadRequest}
	ErrDuplicateUserNames = &AppError{Code: "DUPLICATE_USER_NAMES", Message: "The two user names must be distinct", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
)

// Sector errors.
var (
	ErrSectorNotFound  = &AppError{Code: "SECTOR_NOT_FOUND", Message: "Sector not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSector = &AppError{Code: "DUPLICATE_SECTOR", Message: "A sector with this name already exists", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound      = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType   = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrInvalidSplitType         = &AppError{Code: "INVALID_SPLIT_TYPE", Message: "Unsupported split type", StatusCode: http.StatusBadRequest}
	ErrTransactionTypeImmutable = &AppError{Code: "TRANSACTION_TYPE_IMMUTABLE", Message: "Transaction type cannot be changed after creation", StatusCode: http.StatusBadRequest}
	ErrInvalidReimbursementRef  = &AppError{Code: "INVALID_REIMBURSEMENT_REF", Message: "Reimbursed transaction must be an existing expense", StatusCode: http.StatusBadRequest}
)
