package airaface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/facegate/pkg/slogx"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// Token is a vendor session token. It is immutable once built; the manager
// replaces it as a whole.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ValidAt reports whether the token may still be handed out at now.
func (t Token) ValidAt(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

type TokenManagerConfig struct {
	BaseURL    string
	Username   string
	Password   string
	HTTPClient *http.Client
	Clock      clockwork.Clock
}

// TokenManager owns the single cached vendor token.
type TokenManager struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	clock      clockwork.Clock

	current atomic.Pointer[Token]
	group   singleflight.Group
}

func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = NewHTTPClient(DefaultTimeout, false)
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return &TokenManager{
		baseURL:    cfg.BaseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: cfg.HTTPClient,
		clock:      cfg.Clock,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Acquire returns a token that is valid by the local clock. Unless
// forceRefresh is set, a cached unexpired token is returned without any
// network call. Otherwise one login exchange is performed; concurrent
// exchanges are coalesced into a single request.
//
// The exchange is detached from ctx cancellation and bounded by the HTTP
// client timeout instead, so one disconnecting caller cannot fail the others
// waiting on the same exchange.
func (m *TokenManager) Acquire(ctx context.Context, forceRefresh bool) (Token, error) {
	if !forceRefresh {
		if tok := m.current.Load(); tok != nil && tok.ValidAt(m.clock.Now()) {
			return *tok, nil
		}
	}

	v, err, _ := m.group.Do("generatetoken", func() (any, error) {
		return m.exchange(context.WithoutCancel(ctx))
	})
	if err != nil {
		return Token{}, err
	}
	return v.(Token), nil
}

// Current returns the cached token, if any, without checking expiry.
func (m *TokenManager) Current() (Token, bool) {
	tok := m.current.Load()
	if tok == nil {
		return Token{}, false
	}
	return *tok, true
}

// Invalidate drops the cached token; the next Acquire performs an exchange.
func (m *TokenManager) Invalidate() {
	m.current.Store(nil)
}

// exchange trades the credentials for a new token and swaps it into the
// cache. A failed attempt clears the cache.
func (m *TokenManager) exchange(ctx context.Context) (Token, error) {
	log := slogx.FromContext(ctx)
	now := m.clock.Now()

	tok, err := m.login(ctx, now)
	if err != nil {
		m.Invalidate()
		log.Warn("aira token exchange failed", "error", err)
		return Token{}, err
	}

	m.current.Store(&tok)
	log.Info("aira token refreshed", "expires_at", tok.ExpiresAt, "token_length", len(tok.Value))
	return tok, nil
}

func (m *TokenManager) login(ctx context.Context, now time.Time) (Token, error) {
	payload, err := json.Marshal(loginRequest{Username: m.username, Password: m.password})
	if err != nil {
		return Token{}, &Error{Kind: KindTokenGenerationFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/generatetoken", bytes.NewReader(payload))
	if err != nil {
		return Token{}, &Error{Kind: KindVendorUnreachable, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Token{}, &Error{Kind: KindVendorUnreachable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, &Error{Kind: KindVendorUnreachable, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return Token{}, &Error{
			Kind:       KindTokenGenerationFailed,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Token{}, &Error{Kind: KindTokenGenerationFailed, StatusCode: resp.StatusCode, Body: string(body), Err: err}
	}
	if out.Token == "" {
		return Token{}, &Error{
			Kind:       KindTokenGenerationFailed,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        errors.New("response has no token"),
		}
	}

	return Token{
		Value:     out.Token,
		IssuedAt:  now,
		ExpiresAt: now.Add(VendorTokenLifetime - TokenSafetyMargin),
	}, nil
}
