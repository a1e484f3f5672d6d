package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/facegate/internal/facegate/domain"
	"github.com/aussiebroadwan/facegate/internal/facegate/media"
	"github.com/aussiebroadwan/facegate/internal/facegate/store"
	"github.com/aussiebroadwan/facegate/pkg/idx"
	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

var (
	ErrCameraNotFound    = errors.New("camera not found")
	ErrCameraUnavailable = errors.New("camera stream unavailable")
)

// CameraService keeps the local camera records in step with the vendor and
// opens frame sources for them.
type CameraService struct {
	Store  store.Store
	Opener media.Opener
}

// RecordCreated stores the camera described by a createcamera request body.
// The id is taken from the vendor response when it has one, otherwise a
// new one is minted. A body with neither url nor ip is not recorded and
// yields the zero Camera.
func (s *CameraService) RecordCreated(ctx context.Context, body map[string]any, vendorPayload json.RawMessage) (domain.Camera, error) {
	l := slogx.FromContext(ctx)

	id := vendorCameraID(vendorPayload)
	if !hasLocation(body) {
		l.Debug("created camera has no stream location", "camera_id", id)
		return domain.Camera{}, nil
	}
	if id == "" {
		id = idx.New().String()
	}

	cam := domain.Camera{ID: id}
	applyCameraFields(&cam, body)
	if cam.URL == "" {
		cam.URL = domain.DefaultStreamURL(stringField(body, "ip"), stringField(body, "port"))
	}

	if err := s.Store.Cameras().UpsertCamera(ctx, cam); err != nil {
		l.Error("failed to record camera", "camera_id", id, "error", err)
		return domain.Camera{}, err
	}

	l.Info("camera recorded", "camera_id", id, "url", cam.Redacted().URL)
	return cam, nil
}

// RecordModified applies a modifycamera request body to the local record.
// Unknown cameras are created when the body says where the stream is.
func (s *CameraService) RecordModified(ctx context.Context, id string, body map[string]any) error {
	l := slogx.FromContext(ctx)

	cam, err := s.Store.Cameras().GetCamera(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if !hasLocation(body) {
			l.Debug("modified camera has no local record", "camera_id", id)
			return nil
		}
		cam = domain.Camera{ID: id}
	case err != nil:
		return err
	}

	applyCameraFields(&cam, body)
	if stringField(body, "url") == "" && stringField(body, "ip") != "" {
		cam.URL = domain.DefaultStreamURL(stringField(body, "ip"), stringField(body, "port"))
	}
	cam.UpdatedAt = time.Time{}

	if err := s.Store.Cameras().UpsertCamera(ctx, cam); err != nil {
		l.Error("failed to update camera record", "camera_id", id, "error", err)
		return err
	}

	l.Info("camera record updated", "camera_id", id)
	return nil
}

// Get returns the local record for id.
func (s *CameraService) Get(ctx context.Context, id string) (domain.Camera, error) {
	cam, err := s.Store.Cameras().GetCamera(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Camera{}, ErrCameraNotFound
	}
	return cam, err
}

// Open starts a frame source for the camera. The caller must Close it.
func (s *CameraService) Open(ctx context.Context, id string) (media.FrameSource, error) {
	cam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	src, err := s.Opener.Open(ctx, cam.URL, media.Credentials{Username: cam.Username, Password: cam.Password})
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to open camera", "camera_id", id, "error", err)
		if errors.Is(err, media.ErrUnavailable) {
			return nil, ErrCameraUnavailable
		}
		return nil, err
	}
	return src, nil
}

// Snapshot returns a single JPEG frame from the camera.
func (s *CameraService) Snapshot(ctx context.Context, id string) ([]byte, error) {
	src, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	frame, err := src.Next(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to read camera frame", "camera_id", id, "error", err)
		return nil, ErrCameraUnavailable
	}
	return frame, nil
}

func hasLocation(body map[string]any) bool {
	return stringField(body, "url") != "" || stringField(body, "ip") != ""
}

func applyCameraFields(cam *domain.Camera, body map[string]any) {
	if v := stringField(body, "name"); v != "" {
		cam.Name = v
	}
	if v := stringField(body, "url"); v != "" {
		cam.URL = v
	}
	if v, ok := body["username"]; ok {
		cam.Username = asString(v)
	}
	if v, ok := body["password"]; ok {
		cam.Password = asString(v)
	}
}

// vendorCameraID looks for the new camera's id in a createcamera response.
func vendorCameraID(payload json.RawMessage) string {
	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		return ""
	}

	for _, key := range []string{"id", "camera_id"} {
		if v := stringField(out, key); v != "" {
			return v
		}
	}
	if data, ok := out["data"].(map[string]any); ok {
		return stringField(data, "id")
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(asString(v))
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
