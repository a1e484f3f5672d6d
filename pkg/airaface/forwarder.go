package airaface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

// TokenSource is what the forwarder needs from the token manager.
type TokenSource interface {
	Acquire(ctx context.Context, forceRefresh bool) (Token, error)
}

// Request describes one vendor call. Endpoint is relative to the base URL,
// e.g. "/queryperson".
type Request struct {
	Method   string
	Endpoint string

	// Body is encoded as JSON for POST and PUT. Ignored otherwise.
	Body any

	// Query is encoded into the URL for GET. Ignored otherwise.
	Query url.Values
}

// Response is whatever the vendor answered, status included. A non-2xx
// status is a normal Response, not an error.
type Response struct {
	StatusCode int
	Payload    json.RawMessage
}

// OK reports whether the vendor answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the payload into target.
func (r *Response) Decode(target any) error {
	return json.Unmarshal(r.Payload, target)
}

// Forwarder performs vendor calls with the session token attached.
type Forwarder struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client

	// RetryOnAuthRejection forces one token refresh and one retry when the
	// vendor answers 401 or 403.
	RetryOnAuthRejection bool
}

// Send performs one vendor call. The method is checked before anything else,
// so an unsupported method never reaches the network, not even for login.
// Token failures are returned with their own kind; a missing response is
// KindRequestFailed.
func (f *Forwarder) Send(ctx context.Context, req Request) (*Response, error) {
	method, ok := normalizeMethod(req.Method)
	if !ok {
		return nil, &Error{Kind: KindUnsupportedMethod, Message: "Invalid HTTP method"}
	}

	tok, err := f.Tokens.Acquire(ctx, false)
	if err != nil {
		return nil, err
	}

	resp, err := f.do(ctx, method, req, tok)
	if err != nil {
		return nil, err
	}

	if f.RetryOnAuthRejection && isAuthRejection(resp.StatusCode) {
		slogx.FromContext(ctx).Info("aira rejected token, refreshing",
			"endpoint", req.Endpoint,
			"status", resp.StatusCode,
		)

		tok, err = f.Tokens.Acquire(ctx, true)
		if err != nil {
			return nil, err
		}
		return f.do(ctx, method, req, tok)
	}

	return resp, nil
}

func (f *Forwarder) do(ctx context.Context, method string, r Request, tok Token) (*Response, error) {
	target := f.BaseURL + r.Endpoint

	var body io.Reader
	switch method {
	case http.MethodGet:
		if len(r.Query) > 0 {
			target += "?" + r.Query.Encode()
		}
	case http.MethodPost, http.MethodPut:
		if r.Body != nil {
			payload, err := json.Marshal(r.Body)
			if err != nil {
				return nil, &Error{Kind: KindValidationFailed, Message: "Invalid request body", Err: err}
			}
			body = bytes.NewReader(payload)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}
	req.Header.Set(TokenHeader, tok.Value)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, StatusCode: resp.StatusCode, Err: err}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return nil, &Error{
			Kind:       KindRequestFailed,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Err:        fmt.Errorf("invalid JSON in %d response", resp.StatusCode),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Payload: json.RawMessage(raw)}, nil
}

func normalizeMethod(m string) (string, bool) {
	switch up := strings.ToUpper(m); up {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return up, true
	default:
		return "", false
	}
}

func isAuthRejection(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
