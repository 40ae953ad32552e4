package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes, grouped by the subsystem that raises them.
const (
	CodeInvalidQuery   = "LED_001"
	CodeNotFound       = "LED_002"
	CodeLedgerNotReady = "LED_003"

	CodeFeedNotFound      = "FEED_001"
	CodeFeedConnectFailed = "FEED_002"
	CodeUnknownMerchant   = "FEED_003"

	CodeUnsupportedFormat = "EXP_001"
	CodeExportFailed      = "EXP_002"

	CodeRateLimited = "RATE_001"

	CodeUnknown  = "SYS_000"
	CodeInternal = "SYS_001"
	CodeCache    = "SYS_002"
)

// AppError carries the code and status a handler renders. Err is logged,
// never sent to the client.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return "[" + e.Code + "] " + e.Message
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(code string, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches an internal cause to a client-facing error.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	appErr := New(code, message, httpStatus)
	appErr.Err = err
	return appErr
}

// HasCode reports whether an *AppError with code sits anywhere in err's chain.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ---- Ledger & Query (LED) ----

func ErrInvalidQuery(message string) *AppError {
	return New(CodeInvalidQuery, message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, entity+" not found", http.StatusNotFound)
}

func ErrLedgerNotReady() *AppError {
	return New(CodeLedgerNotReady, "Ledger is still initializing", http.StatusServiceUnavailable)
}

// ---- Live Feed (FEED) ----

func ErrFeedNotFound() *AppError {
	return New(CodeFeedNotFound, "Feed not found or already closed", http.StatusNotFound)
}

func ErrFeedConnectFailed(err error) *AppError {
	return Wrap(CodeFeedConnectFailed, "Feed could not be established", http.StatusServiceUnavailable, err)
}

func ErrUnknownMerchant(id string) *AppError {
	return New(CodeUnknownMerchant, fmt.Sprintf("unknown merchant %q", id), http.StatusNotFound)
}

// ---- Export (EXP) ----

func ErrUnsupportedFormat(format string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported export format %q: must be csv or json", format), http.StatusBadRequest)
}

func ErrExportFailed(err error) *AppError {
	return Wrap(CodeExportFailed, "Export serialization failed", http.StatusInternalServerError, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System (SYS) ----

func ErrCacheError(err error) *AppError {
	return Wrap(CodeCache, "Cache backend error", http.StatusInternalServerError, err)
}

func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation is the error for input rejected by binding.
func Validation(message string) *AppError {
	return ErrInvalidQuery(message)
}
