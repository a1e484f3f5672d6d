package facegatesdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Snapshot fetches one JPEG frame from a camera the gateway knows.
func (c *SDKClient) Snapshot(ctx context.Context, cameraID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.url("/api/camera/"+url.PathEscape(cameraID)+"/snapshot", nil), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}

	return body, nil
}

// StreamURL is the MJPEG stream address for a camera, suitable for an
// <img> tag or a video player.
func (c *SDKClient) StreamURL(cameraID string) string {
	return c.url("/api/camera/"+url.PathEscape(cameraID)+"/stream", nil)
}
