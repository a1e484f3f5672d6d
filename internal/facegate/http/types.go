package http

import (
	"context"

	"github.com/aussiebroadwan/facegate/pkg/airaface"
)

// Forwarder sends one authenticated call to the vendor.
type Forwarder interface {
	Send(ctx context.Context, req airaface.Request) (*airaface.Response, error)
}

// TokenManager hands out the vendor session token.
type TokenManager interface {
	Acquire(ctx context.Context, forceRefresh bool) (airaface.Token, error)
}

// Pinger checks a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type IndexResponse struct {
	Status     string `json:"status" example:"running"`
	Service    string `json:"service" example:"airaFace API Integration"`
	Version    string `json:"version" example:"1.0.0"`
	AiraServer string `json:"aira_server" example:"https://192.168.1.100:443"`
}

type HealthResponse struct {
	Status     string `json:"status" example:"healthy"`
	AiraAPI    string `json:"aira_api" example:"connected"`
	TokenValid *bool  `json:"token_valid,omitempty" example:"true"`
	Database   string `json:"database,omitempty" example:"connected"`
	Error      string `json:"error,omitempty"`
}

type TokenRefreshResponse struct {
	Message   string `json:"message" example:"Token refreshed successfully"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at" example:"2025-03-14T10:21:53Z"`
}

type WebsocketInfoResponse struct {
	WebsocketURL    string             `json:"websocket_url" example:"ws://192.168.1.100/airafacelite/verifyresults"`
	Description     string             `json:"description"`
	ExampleResponse RecognitionExample `json:"example_response"`
}

// RecognitionExample mirrors one event pushed on the vendor's realtime
// channel.
type RecognitionExample struct {
	Type        int               `json:"type"`
	Score       float64           `json:"score"`
	TargetScore float64           `json:"target_score"`
	Snapshot    string            `json:"snapshot"`
	Channel     string            `json:"channel"`
	Timestamp   int64             `json:"timestamp"`
	PersonInfo  map[string]string `json:"person_info"`
}
