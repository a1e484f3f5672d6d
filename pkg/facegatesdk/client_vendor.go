package facegatesdk

import (
	"context"
	"net/http"
	"net/url"
)

// vendor sends a relayed call and reads the vendor's answer.
func (c *SDKClient) vendor(ctx context.Context, method, path string, query url.Values, body any) (*VendorResponse, error) {
	resp, err := c.doRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	return decodeVendor(resp)
}

// ListPersons queries vendor persons. query is passed through unchanged.
func (c *SDKClient) ListPersons(ctx context.Context, query url.Values) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodGet, "/api/persons", query, nil)
}

// CreatePerson creates a vendor person. person must carry a fullname.
func (c *SDKClient) CreatePerson(ctx context.Context, person map[string]any) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodPost, "/api/persons", nil, person)
}

// ModifyPerson updates the vendor person id.
func (c *SDKClient) ModifyPerson(ctx context.Context, id string, fields map[string]any) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodPut, "/api/persons/"+url.PathEscape(id), nil, fields)
}

// ListCameras queries vendor cameras.
func (c *SDKClient) ListCameras(ctx context.Context, query url.Values) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodGet, "/api/cameras", query, nil)
}

// CreateCamera creates a vendor camera. The gateway also keeps the stream
// location so snapshots and streams work for it.
func (c *SDKClient) CreateCamera(ctx context.Context, camera map[string]any) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodPost, "/api/cameras", nil, camera)
}

// ModifyCamera updates the vendor camera id.
func (c *SDKClient) ModifyCamera(ctx context.Context, id string, fields map[string]any) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodPut, "/api/cameras/"+url.PathEscape(id), nil, fields)
}

// CreateEventHandler creates a vendor event handler. Omitted fields take the
// gateway's defaults.
func (c *SDKClient) CreateEventHandler(ctx context.Context, handler map[string]any) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodPost, "/api/events", nil, handler)
}

// ModifyEventHandler updates the vendor event handler id.
func (c *SDKClient) ModifyEventHandler(ctx context.Context, id string, fields map[string]any) (*VendorResponse, error) {
	return c.vendor(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), nil, fields)
}

// QueryRecognitions lists recognition results matching f.
func (c *SDKClient) QueryRecognitions(ctx context.Context, f RecognitionFilter) (*VendorResponse, error) {
	q := url.Values{}
	for k, v := range map[string]string{
		"start_time": f.StartTime,
		"end_time":   f.EndTime,
		"person_id":  f.PersonID,
		"camera_id":  f.CameraID,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return c.vendor(ctx, http.MethodGet, "/api/recognitions", q, nil)
}
