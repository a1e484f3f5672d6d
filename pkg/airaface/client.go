package airaface

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultTimeout bounds every outbound vendor call, login included.
	DefaultTimeout = 10 * time.Second

	// VendorTokenLifetime is how long the vendor documents a token to live.
	VendorTokenLifetime = 60 * time.Minute

	// TokenSafetyMargin is subtracted from the vendor lifetime so a cached
	// token is never handed out close to its real expiry.
	TokenSafetyMargin = 5 * time.Minute

	// TokenHeader is the header the vendor reads the session token from.
	TokenHeader = "token"

	basePath = "/airafacelite"
)

// Config holds the connection parameters for the vendor API.
type Config struct {
	Protocol string // http or https
	Host     string
	Port     string
	Username string
	Password string

	// Timeout for each vendor call (default: 10s)
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification. Only for
	// appliances with self-signed certificates.
	InsecureSkipVerify bool

	// RetryOnAuthRejection makes the forwarder force one token refresh and
	// retry when the vendor answers 401 or 403.
	RetryOnAuthRejection bool

	// Optional overrides, mostly for tests.
	HTTPClient *http.Client
	Clock      clockwork.Clock
}

// ServerURL is the vendor origin, e.g. https://192.168.1.100:443.
func (c Config) ServerURL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// BaseURL is the root every vendor endpoint is appended to.
func (c Config) BaseURL() string {
	return c.ServerURL() + basePath
}

// Client bundles the token manager and the forwarder that share it.
type Client struct {
	Tokens    *TokenManager
	Forwarder *Forwarder

	cfg Config
}

// New creates a Client. Nothing is sent to the vendor until the first call.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = NewHTTPClient(cfg.Timeout, cfg.InsecureSkipVerify)
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	tokens := NewTokenManager(TokenManagerConfig{
		BaseURL:    cfg.BaseURL(),
		Username:   cfg.Username,
		Password:   cfg.Password,
		HTTPClient: cfg.HTTPClient,
		Clock:      cfg.Clock,
	})

	return &Client{
		Tokens: tokens,
		Forwarder: &Forwarder{
			BaseURL:              cfg.BaseURL(),
			Tokens:               tokens,
			HTTPClient:           cfg.HTTPClient,
			RetryOnAuthRejection: cfg.RetryOnAuthRejection,
		},
		cfg: cfg,
	}
}

// Send forwards one authenticated call. See Forwarder.Send.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	return c.Forwarder.Send(ctx, req)
}

// Acquire returns a usable token. See TokenManager.Acquire.
func (c *Client) Acquire(ctx context.Context, forceRefresh bool) (Token, error) {
	return c.Tokens.Acquire(ctx, forceRefresh)
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config { return c.cfg }

// NewHTTPClient returns an http.Client with a fixed timeout. When
// insecureSkipVerify is set the vendor certificate is not checked.
func NewHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // opt-in for self-signed appliances
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
