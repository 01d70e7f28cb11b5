// Package apperrors carries coded errors shared by the fetchers, the calculator and the
// presentation layers.
package apperrors

import "errors"

// Error codes used across the dashboard.
const (
	CodeTransport          = "transport_error"
	CodeMalformedResponse  = "malformed_response"
	CodeUpstreamStatus     = "upstream_status"
	CodeCityNotFound       = "city_not_found"
	CodeMissingCredentials = "missing_credentials"
	CodeInvalidConfig      = "invalid_config"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code returns the code of the outermost AppError, or "" when there is none.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
