package facegatesdk

import (
	"encoding/json"
	"time"
)

// ErrorResponse is the body of every gateway failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by GET /.
type StatusResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	AiraServer string `json:"aira_server"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status     string `json:"status"`
	AiraAPI    string `json:"aira_api"`
	TokenValid bool   `json:"token_valid"`
	Database   string `json:"database,omitempty"`
	Error      string `json:"error,omitempty"`
}

// TokenRefreshResponse is returned by POST /api/token/refresh.
type TokenRefreshResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WebsocketInfo is returned by GET /api/websocket/info.
type WebsocketInfo struct {
	WebsocketURL    string             `json:"websocket_url"`
	Description     string             `json:"description"`
	ExampleResponse RecognitionExample `json:"example_response"`
}

// RecognitionExample is the shape of a realtime recognition event.
type RecognitionExample struct {
	Type        int               `json:"type"`
	Score       float64           `json:"score"`
	TargetScore float64           `json:"target_score"`
	Snapshot    string            `json:"snapshot"`
	Channel     string            `json:"channel"`
	Timestamp   int64             `json:"timestamp"`
	PersonInfo  map[string]string `json:"person_info"`
}

// VendorResponse is a vendor answer relayed by the gateway. StatusCode is
// the vendor's own status; a 4xx here is the vendor's verdict, not an SDK
// error.
type VendorResponse struct {
	StatusCode int
	Payload    json.RawMessage
}

// OK reports whether the vendor answered 2xx.
func (r *VendorResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the payload into target.
func (r *VendorResponse) Decode(target any) error {
	return json.Unmarshal(r.Payload, target)
}

// RecognitionFilter narrows a recognition query. Empty fields are omitted.
type RecognitionFilter struct {
	StartTime string
	EndTime   string
	PersonID  string
	CameraID  string
}
