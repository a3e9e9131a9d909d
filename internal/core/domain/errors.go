package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotConfigured indicates a required setting (API URL, client id) is missing.
	ErrNotConfigured = errors.New("not configured")

	// Authentication Errors.

	// ErrAuthRequired indicates the operation needs a signed-in session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the session expired and could not be refreshed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// GenericErrorMessage is shown when an operation fails without a usable message.
const GenericErrorMessage = "An unexpected error occurred"

// APIError is returned by the request function when the backend answers
// with a status outside the 2xx range.
type APIError struct {
	// Message is human readable; never empty.
	Message string `json:"message"`
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"statusCode"`
	// Code is the optional backend error code.
	Code string `json:"code,omitempty"`
}

// NewAPIError builds an APIError, synthesising a message when none is given.
func NewAPIError(status int, message, code string) *APIError {
	if message == "" {
		message = fmt.Sprintf("API Error: %d", status)
	}
	return &APIError{Message: message, StatusCode: status, Code: code}
}

// Error implements error.
func (e *APIError) Error() string {
	return e.Message
}

// Is maps well-known statuses onto domain sentinels so callers can use errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrAuthRequired:
		return e.StatusCode == http.StatusUnauthorized
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// UserMessage returns the message to show for err at a page boundary.
// API errors surface the backend message; anything else gets the fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback == "" {
		return GenericErrorMessage
	}
	return fallback
}
