package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/facegate/internal/facegate/domain"
	"github.com/aussiebroadwan/facegate/pkg/airaface"
	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

// CameraRecorder mirrors vendor camera changes into the local store.
type CameraRecorder interface {
	RecordCreated(ctx context.Context, body map[string]any, vendorPayload json.RawMessage) (domain.Camera, error)
	RecordModified(ctx context.Context, id string, body map[string]any) error
}

// CamerasHandler relays camera management to the vendor and keeps the local
// camera records used for snapshots and streams.
type CamerasHandler struct {
	Forwarder Forwarder
	Cameras   CameraRecorder
}

// HandleList handles GET /api/cameras
//
//	@Summary		Query cameras
//	@Description	Forwards the query string to the vendor camera query.
//	@Tags			Cameras
//	@Produce		json
//	@Success		200	{object}	map[string]any			"Vendor response"
//	@Failure		500	{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/cameras [get].
func (h *CamerasHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodGet,
		Endpoint: "/querycamera",
		Query:    r.URL.Query(),
	})
}

// HandleCreate handles POST /api/cameras
//
//	@Summary		Create camera
//	@Description	Creates a camera on the vendor. On success the stream location and credentials are also kept locally.
//	@Tags			Cameras
//	@Accept			json
//	@Produce		json
//	@Param			request	body		map[string]any			true	"Camera record"
//	@Success		200		{object}	map[string]any			"Vendor response"
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid body"
//	@Failure		500		{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/cameras [post].
func (h *CamerasHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	resp := forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodPost,
		Endpoint: "/createcamera",
		Body:     body,
	})
	if resp == nil || !resp.OK() || h.Cameras == nil {
		return
	}

	// The vendor already answered; a local failure only costs media access.
	if _, err := h.Cameras.RecordCreated(r.Context(), body, resp.Payload); err != nil {
		slogx.FromContext(r.Context()).Error("camera created on vendor but not recorded", "error", err)
	}
}

// HandleModify handles PUT /api/cameras/{id}
//
//	@Summary		Modify camera
//	@Description	Merges the path id into the body and forwards it to the vendor. On success the local record is updated.
//	@Tags			Cameras
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Camera ID"
//	@Param			request	body		map[string]any			true	"Fields to change"
//	@Success		200		{object}	map[string]any			"Vendor response"
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid body"
//	@Failure		500		{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/cameras/{id} [put].
func (h *CamerasHandler) HandleModify(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	body["id"] = id

	resp := forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodPost,
		Endpoint: "/modifycamera",
		Body:     body,
	})
	if resp == nil || !resp.OK() || h.Cameras == nil {
		return
	}

	if err := h.Cameras.RecordModified(r.Context(), id, body); err != nil {
		slogx.FromContext(r.Context()).Error("camera modified on vendor but not recorded", "camera_id", id, "error", err)
	}
}
