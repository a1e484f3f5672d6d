package http

import (
	"net/http"

	"github.com/aussiebroadwan/facegate/pkg/airaface"
)

type RecognitionsHandler struct {
	Forwarder Forwarder
}

// ServeHTTP godoc
//
//	@Summary		Query recognition results
//	@Description	Forwards the supported filters to the vendor. Filters that are absent or empty are dropped.
//	@Tags			Recognitions
//	@Produce		json
//	@Param			start_time	query		string					false	"Start of the window (vendor format)"
//	@Param			end_time	query		string					false	"End of the window (vendor format)"
//	@Param			person_id	query		string					false	"Person ID"
//	@Param			camera_id	query		string					false	"Camera ID"
//	@Success		200			{object}	map[string]any			"Vendor response"
//	@Failure		500			{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/recognitions [get].
func (h *RecognitionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodGet,
		Endpoint: "/querypersonverifyresult",
		Query:    pick(r.URL.Query(), "start_time", "end_time", "person_id", "camera_id"),
	})
}
