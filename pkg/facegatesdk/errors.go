package facegatesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a failure reported by the gateway itself.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Message is the gateway's error text
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("facegate: %d: %s", e.StatusCode, e.Message)
}

// Is matches errors by status code, so callers can write
// errors.Is(err, facegatesdk.ErrNotFound).
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

var (
	ErrBadRequest        = &APIError{StatusCode: http.StatusBadRequest}
	ErrNotFound          = &APIError{StatusCode: http.StatusNotFound}
	ErrTooManyRequests   = &APIError{StatusCode: http.StatusTooManyRequests}
	ErrServerError       = &APIError{StatusCode: http.StatusInternalServerError}
	ErrCameraUnavailable = &APIError{StatusCode: http.StatusServiceUnavailable}
)

// IsTokenFailure reports whether err is the gateway failing to log in to the
// vendor.
func IsTokenFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.HasPrefix(apiErr.Message, "Token generation failed")
}

// parseErrorResponse turns an error response into an *APIError. Unhealthy
// health answers carry their reason in the same error field.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
