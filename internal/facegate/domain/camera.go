package domain

import (
	"net/url"
	"time"
)

// Camera is the local record for an RTSP source registered with the vendor.
// The vendor keeps its own copy; this one exists so frames can be pulled
// without asking the vendor for credentials.
type Camera struct {
	ID       string
	Name     string
	URL      string
	Username string
	Password string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultStreamURL is what the dashboard assumes when a camera is created
// without an explicit URL.
func DefaultStreamURL(host, port string) string {
	if port == "" {
		port = "554"
	}
	return "rtsp://" + host + ":" + port + "/stream"
}

// Redacted returns a copy safe for logs and API responses.
func (c Camera) Redacted() Camera {
	if c.Password != "" {
		c.Password = "********"
	}
	if u, err := url.Parse(c.URL); err == nil {
		c.URL = u.Redacted()
	}
	return c
}
