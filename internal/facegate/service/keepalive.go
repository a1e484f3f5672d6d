package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/facegate/pkg/airaface"
	"github.com/jonboulle/clockwork"
)

// KeepaliveService periodically asks the token manager for a token so an
// expired one is replaced before a user request has to wait for the login
// exchange. A cached valid token costs nothing.
type KeepaliveService struct {
	Tokens   airaface.TokenSource
	Logger   *slog.Logger
	Interval time.Duration
	Clock    clockwork.Clock

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewKeepaliveService creates the worker. A non-positive interval defaults to
// 5 minutes; callers that want no keepalive simply do not start it.
func NewKeepaliveService(tokens airaface.TokenSource, logger *slog.Logger, interval time.Duration, clock clockwork.Clock) *KeepaliveService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &KeepaliveService{
		Tokens:   tokens,
		Logger:   logger,
		Interval: interval,
		Clock:    clock,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
// Starting twice, or after Stop, does nothing.
func (s *KeepaliveService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true

	go s.run()
	s.Logger.Info("token keepalive started", "interval", s.Interval)
}

// Stop blocks until an in-flight refresh has finished. It is safe to call
// more than once, and without a prior Start.
func (s *KeepaliveService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.mu.Unlock()

	close(s.stopCh)
	if started {
		<-s.doneCh
	}
	s.Logger.Info("token keepalive stopped")
}

func (s *KeepaliveService) run() {
	defer close(s.doneCh)

	ticker := s.Clock.NewTicker(s.Interval)
	defer ticker.Stop()

	s.tick()

	for {
		select {
		case <-ticker.Chan():
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

func (s *KeepaliveService) tick() {
	tok, err := s.Tokens.Acquire(context.Background(), false)
	if err != nil {
		s.Logger.Warn("token keepalive failed", "error", err)
		return
	}
	s.Logger.Debug("token keepalive ok", "expires_at", tok.ExpiresAt)
}
