package airaface

import (
	"fmt"
	"net/http"
)

// Kind classifies every failure the token manager and forwarder can report.
// The set is closed: vendor responses with a non-2xx status are not errors and
// never carry a Kind.
type Kind int

const (
	// KindTokenGenerationFailed means the vendor answered the login exchange
	// with a status other than 200.
	KindTokenGenerationFailed Kind = iota + 1

	// KindVendorUnreachable means the login exchange got no response at all.
	KindVendorUnreachable

	// KindRequestFailed means an operational call got no usable response.
	KindRequestFailed

	// KindUnsupportedMethod means the caller asked for a method other than
	// GET, POST, PUT or DELETE.
	KindUnsupportedMethod

	// KindValidationFailed means a caller precondition failed before any
	// vendor call was attempted.
	KindValidationFailed
)

func (k Kind) String() string {
	switch k {
	case KindTokenGenerationFailed:
		return "token_generation_failed"
	case KindVendorUnreachable:
		return "vendor_unreachable"
	case KindRequestFailed:
		return "request_failed"
	case KindUnsupportedMethod:
		return "unsupported_method"
	case KindValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// HTTPStatus is the status code a route handler should answer with when it
// surfaces an error of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnsupportedMethod, KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is the only error type returned by TokenManager and Forwarder.
// Match on it with errors.Is against the Err* sentinels or errors.As.
type Error struct {
	Kind Kind

	// StatusCode is the vendor status for TokenGenerationFailed (and for a
	// RequestFailed caused by an unreadable body). Zero when no response was
	// received.
	StatusCode int

	// Body is the vendor response body kept for diagnostics.
	Body string

	// Message is the caller-facing detail for validation and method errors.
	Message string

	// Err is the underlying transport or decoding error, if any.
	Err error
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrTokenGenerationFailed = &Error{Kind: KindTokenGenerationFailed}
	ErrVendorUnreachable     = &Error{Kind: KindVendorUnreachable}
	ErrRequestFailed         = &Error{Kind: KindRequestFailed}
	ErrUnsupportedMethod     = &Error{Kind: KindUnsupportedMethod}
	ErrValidationFailed      = &Error{Kind: KindValidationFailed}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindTokenGenerationFailed:
		if e.StatusCode == 0 {
			return fmt.Sprintf("Token generation failed: %v", e.Err)
		}
		return fmt.Sprintf("Token generation failed: %d - %s", e.StatusCode, e.Body)
	case KindVendorUnreachable:
		return fmt.Sprintf("Failed to connect to airaFace API: %v", e.Err)
	case KindRequestFailed:
		return fmt.Sprintf("API request failed: %v", e.Err)
	case KindUnsupportedMethod:
		return "Invalid HTTP method"
	case KindValidationFailed:
		return e.Message
	default:
		return "airaface: unknown error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// HTTPStatus returns the status a handler should respond with.
func (e *Error) HTTPStatus() int { return e.Kind.HTTPStatus() }

// NewValidationError builds a ValidationFailed error with a fixed message.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidationFailed, Message: message}
}
