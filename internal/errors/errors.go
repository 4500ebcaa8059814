// Package errors provides the structured errors returned by services and
// rendered by handlers. Internal causes are kept for logging and never
// reach the client.
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

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrInvalidToken = &AppError{Code: "UNAUTHORIZED", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}

	ErrInvalidAPIKey         = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrPipelineNotConfigured = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrInvalidDate    = &AppError{Code: "INVALID_DATE", Message: "Dates must be calendar dates in YYYY-MM-DD form", StatusCode: http.StatusBadRequest}
)

// Paycheck errors.
var (
	ErrPaycheckNotFound       = &AppError{Code: "PAYCHECK_NOT_FOUND", Message: "Paycheck not found", StatusCode: http.StatusNotFound}
	ErrDeductionsExceedGross  = &AppError{Code: "DEDUCTIONS_EXCEED_GROSS", Message: "Deductions cannot exceed gross pay", StatusCode: http.StatusBadRequest}
	ErrInvalidFrequency       = &AppError{Code: "INVALID_FREQUENCY", Message: "Unsupported frequency", StatusCode: http.StatusBadRequest}
	ErrProjectionInProgress   = &AppError{Code: "PROJECTION_IN_PROGRESS", Message: "This paycheck is already being projected", StatusCode: http.StatusConflict}
	ErrNothingToProject       = &AppError{Code: "NOTHING_TO_PROJECT", Message: "No pay dates remain this year", StatusCode: http.StatusUnprocessableEntity}
	ErrProjectedSourceInvalid = &AppError{Code: "INVALID_INPUT", Message: "Projected paychecks cannot be projected again", StatusCode: http.StatusBadRequest}
	ErrEmptyPaystub           = &AppError{Code: "EMPTY_PAYSTUB", Message: "Paystub text is empty", StatusCode: http.StatusBadRequest}
	ErrPaystubTooLarge        = &AppError{Code: "PAYSTUB_TOO_LARGE", Message: "Paystub text exceeds 1 MiB", StatusCode: http.StatusRequestEntityTooLarge}
)

// Recurring expense errors.
var (
	ErrRecurringExpenseNotFound = &AppError{Code: "RECURRING_EXPENSE_NOT_FOUND", Message: "Recurring expense not found", StatusCode: http.StatusNotFound}
	ErrRecurringExpenseInactive = &AppError{Code: "RECURRING_EXPENSE_INACTIVE", Message: "Recurring expense is no longer active", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
)
