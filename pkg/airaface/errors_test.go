package airaface

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Messages(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"token status", &Error{Kind: KindTokenGenerationFailed, StatusCode: 401, Body: "denied"}, "Token generation failed: 401 - denied"},
		{"token decode", &Error{Kind: KindTokenGenerationFailed, Err: cause}, "Token generation failed: dial tcp: connection refused"},
		{"unreachable", &Error{Kind: KindVendorUnreachable, Err: cause}, "Failed to connect to airaFace API: dial tcp: connection refused"},
		{"request", &Error{Kind: KindRequestFailed, Err: cause}, "API request failed: dial tcp: connection refused"},
		{"method", &Error{Kind: KindUnsupportedMethod}, "Invalid HTTP method"},
		{"validation", NewValidationError("fullname is required"), "fullname is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Matching(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := fmt.Errorf("listing cameras: %w", &Error{Kind: KindRequestFailed, Err: cause})

	require.ErrorIs(t, err, ErrRequestFailed)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrVendorUnreachable)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	require.Equal(t, KindRequestFailed, aerr.Kind)
}

func TestKind(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusBadRequest, KindUnsupportedMethod.HTTPStatus())
	require.Equal(t, http.StatusBadRequest, KindValidationFailed.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, KindTokenGenerationFailed.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, KindVendorUnreachable.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, KindRequestFailed.HTTPStatus())

	require.Equal(t, "request_failed", KindRequestFailed.String())
	require.Equal(t, "unknown", Kind(0).String())
}
