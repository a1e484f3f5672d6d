// Package media pulls JPEG frames from camera sources. Nothing in the vendor
// client depends on it; route handlers reach it through Opener.
package media

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by Opener.Open when the source cannot be
// reached or produces no frame.
var ErrUnavailable = errors.New("media: source unavailable")

// Credentials are passed to the source when the URL carries none.
type Credentials struct {
	Username string
	Password string
}

// FrameSource yields JPEG frames until it is closed or the source ends, at
// which point Next returns io.EOF.
type FrameSource interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// Opener opens a FrameSource for a camera URL.
type Opener interface {
	Open(ctx context.Context, url string, creds Credentials) (FrameSource, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string, creds Credentials) (FrameSource, error)

func (f OpenerFunc) Open(ctx context.Context, url string, creds Credentials) (FrameSource, error) {
	return f(ctx, url, creds)
}
