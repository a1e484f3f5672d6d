package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/facegate/pkg/httpx"
	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

// IndexHandler reports that the service is running and which vendor server
// it fronts.
type IndexHandler struct {
	Version    string
	AiraServer string
}

// ServeHTTP godoc
//
//	@Summary		Service banner
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	IndexResponse
//	@Router			/ [get].
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, IndexResponse{
		Status:     "running",
		Service:    "airaFace API Integration",
		Version:    h.Version,
		AiraServer: h.AiraServer,
	})
}

// HealthHandler checks that a vendor token can be obtained. The camera store
// is reported alongside when one is configured; it does not decide Status.
type HealthHandler struct {
	Tokens TokenManager
	Store  Pinger
}

// ServeHTTP godoc
//
//	@Summary		Health check
//	@Description	Obtains a vendor token (cached when still valid). Healthy means the vendor accepted our credentials.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"Vendor reachable"
//	@Failure		500	{object}	HealthResponse	"Vendor unreachable or login rejected"
//	@Router			/api/health [get].
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var database string
	if h.Store != nil {
		database = "connected"
		if err := h.Store.Ping(r.Context()); err != nil {
			l.Warn("camera store ping failed", "error", err)
			database = "disconnected"
		}
	}

	tok, err := h.Tokens.Acquire(r.Context(), false)
	if err != nil {
		l.Warn("health check failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, HealthResponse{
			Status:   "unhealthy",
			AiraAPI:  "disconnected",
			Database: database,
			Error:    err.Error(),
		})
		return
	}

	valid := tok.Value != ""
	httpx.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:     "healthy",
		AiraAPI:    "connected",
		TokenValid: &valid,
		Database:   database,
	})
}

// TokenRefreshHandler forces a new vendor login.
type TokenRefreshHandler struct {
	Tokens TokenManager
}

// ServeHTTP godoc
//
//	@Summary		Refresh vendor token
//	@Description	Discards the cached vendor token and logs in again.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	TokenRefreshResponse
//	@Failure		500	{object}	httpx.ErrorResponse	"Login exchange failed"
//	@Router			/api/token/refresh [post].
func (h *TokenRefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tok, err := h.Tokens.Acquire(r.Context(), true)
	if err != nil {
		writeVendorError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenRefreshResponse{
		Message:   "Token refreshed successfully",
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// WebsocketInfoHandler describes the vendor's realtime recognition channel.
// facegate does not proxy it.
type WebsocketInfoHandler struct {
	ServerHost string
}

// ServeHTTP godoc
//
//	@Summary		Realtime channel info
//	@Description	Returns the vendor WebSocket URL for realtime recognition events and an example event.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	WebsocketInfoResponse
//	@Router			/api/websocket/info [get].
func (h *WebsocketInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, WebsocketInfoResponse{
		WebsocketURL: "ws://" + h.ServerHost + "/airafacelite/verifyresults",
		Description:  "Connect to this WebSocket to receive real-time recognition events",
		ExampleResponse: RecognitionExample{
			Type:        1,
			Score:       0.87,
			TargetScore: 0.85,
			Snapshot:    "base64_encoded_image",
			Channel:     "Camera-5",
			Timestamp:   1714623611025,
			PersonInfo: map[string]string{
				"fullname":   "John Doe",
				"employeeno": "A0001",
			},
		},
	})
}
