package facegatesdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the facegate gateway.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the gateway at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			// Covers a gateway that itself waits out a vendor timeout
			Timeout: 30 * time.Second,
		},
	}
}
