package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/facegate/pkg/airaface"
	"github.com/aussiebroadwan/facegate/pkg/httpx"
)

// forward sends req and relays the vendor's status and payload. A nil
// response means an error has already been written.
func forward(w http.ResponseWriter, r *http.Request, f Forwarder, req airaface.Request) *airaface.Response {
	resp, err := f.Send(r.Context(), req)
	if err != nil {
		writeVendorError(w, r, err)
		return nil
	}

	httpx.WriteRawJSON(w, resp.StatusCode, resp.Payload)
	return resp
}

// readBody decodes the inbound JSON object, writing a 400 on failure.
func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body, err := httpx.DecodeJSONObject(w, r)
	if err != nil {
		writeVendorError(w, r, &airaface.Error{
			Kind:    airaface.KindValidationFailed,
			Message: "Invalid JSON body",
			Err:     err,
		})
		return nil, false
	}
	return body, true
}

// pick keeps only the listed keys that are present and non-empty.
func pick(in url.Values, keys ...string) url.Values {
	out := url.Values{}
	for _, k := range keys {
		if v := in.Get(k); v != "" {
			out.Set(k, v)
		}
	}
	return out
}
