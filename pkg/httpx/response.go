package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps inbound JSON bodies.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Endpoint not found"`
}

// WriteJSON writes v as JSON with the given status code and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRawJSON writes an already encoded JSON payload verbatim.
func WriteRawJSON(w http.ResponseWriter, code int, payload []byte) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(payload)
}

// ErrorSourceHeader marks responses the gateway wrote itself, so clients can
// tell them apart from relayed vendor payloads of the same shape.
const ErrorSourceHeader = "X-Facegate-Error"

// WriteError writes an ErrorResponse.
func WriteError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set(ErrorSourceHeader, "gateway")
	WriteJSON(w, code, ErrorResponse{Error: msg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// ErrInvalidJSON is returned by DecodeJSONObject for a body that is not a
// JSON object.
var ErrInvalidJSON = errors.New("invalid JSON body")

// DecodeJSONObject reads the request body as a JSON object. An empty body
// yields an empty map.
func DecodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	out := map[string]any{}
	if len(body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if out == nil {
		// "null" decodes into a nil map.
		out = map[string]any{}
	}
	return out, nil
}
