package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/facegate/internal/facegate/media"
	"github.com/aussiebroadwan/facegate/internal/facegate/service"
	"github.com/aussiebroadwan/facegate/pkg/httpx"
	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

// CameraMedia opens frames from locally recorded cameras.
type CameraMedia interface {
	Open(ctx context.Context, id string) (media.FrameSource, error)
	Snapshot(ctx context.Context, id string) ([]byte, error)
}

// MediaHandler serves camera snapshots and MJPEG streams.
type MediaHandler struct {
	Cameras CameraMedia
}

func writeMediaError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrCameraNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Camera not found")
	case errors.Is(err, service.ErrCameraUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "Camera stream unavailable")
	default:
		slogx.FromContext(r.Context()).Error("camera media failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleSnapshot handles GET /api/camera/{id}/snapshot
//
//	@Summary		Camera snapshot
//	@Description	Grabs a single JPEG frame from the camera's stream.
//	@Tags			Media
//	@Produce		jpeg
//	@Param			id	path		string					true	"Camera ID"
//	@Success		200	{file}		binary					"JPEG image"
//	@Failure		404	{object}	httpx.ErrorResponse	"Camera not found"
//	@Failure		503	{object}	httpx.ErrorResponse	"Camera stream unavailable"
//	@Router			/api/camera/{id}/snapshot [get].
func (h *MediaHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	frame, err := h.Cameras.Snapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		writeMediaError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(frame)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(frame)
}

// HandleStream handles GET /api/camera/{id}/stream
//
//	@Summary		Camera MJPEG stream
//	@Description	Streams the camera as multipart/x-mixed-replace JPEG frames until the client disconnects.
//	@Tags			Media
//	@Produce		multipart/x-mixed-replace
//	@Param			id	path		string					true	"Camera ID"
//	@Success		200	{file}		binary					"MJPEG stream"
//	@Failure		404	{object}	httpx.ErrorResponse	"Camera not found"
//	@Failure		503	{object}	httpx.ErrorResponse	"Camera stream unavailable"
//	@Router			/api/camera/{id}/stream [get].
func (h *MediaHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := r.PathValue("id")

	src, err := h.Cameras.Open(ctx, id)
	if err != nil {
		writeMediaError(w, r, err)
		return
	}
	defer src.Close()

	rc := http.NewResponseController(w)
	mw := media.NewMJPEGWriter(w, rc.Flush)

	httpx.NoCache(w)
	w.Header().Set("Content-Type", mw.ContentType())
	w.WriteHeader(http.StatusOK)

	frames := 0
	for {
		frame, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Info("camera stream ended", "camera_id", id, "frames", frames, "error", err)
			}
			break
		}
		if err := mw.WriteFrame(frame); err != nil {
			log.Debug("stream client went away", "camera_id", id, "frames", frames)
			return
		}
		frames++
	}
	_ = mw.Close()
}
