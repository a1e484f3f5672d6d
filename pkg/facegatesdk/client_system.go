package facegatesdk

import (
	"context"
	"net/http"
)

// GetStatus returns the service banner.
func (c *SDKClient) GetStatus(ctx context.Context) (*StatusResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return nil, err
	}

	var status StatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return nil, err
	}

	return &status, nil
}

// GetHealth checks that the gateway can log in to the vendor. An unhealthy
// gateway is reported as an *APIError carrying the reason.
func (c *SDKClient) GetHealth(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/health", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// RefreshToken makes the gateway discard its vendor token and log in again.
func (c *SDKClient) RefreshToken(ctx context.Context) (*TokenRefreshResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/token/refresh", nil, nil)
	if err != nil {
		return nil, err
	}

	var out TokenRefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetWebsocketInfo describes the vendor's realtime recognition channel.
func (c *SDKClient) GetWebsocketInfo(ctx context.Context) (*WebsocketInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/websocket/info", nil, nil)
	if err != nil {
		return nil, err
	}

	var info WebsocketInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}

	return &info, nil
}
