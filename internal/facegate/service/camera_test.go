package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aussiebroadwan/facegate/internal/facegate/media"
	"github.com/aussiebroadwan/facegate/internal/facegate/service"
	"github.com/aussiebroadwan/facegate/internal/facegate/store/drivers/sqlite"
	"github.com/aussiebroadwan/facegate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	frames [][]byte
	closed bool
}

func (s *sliceSource) Next(context.Context) ([]byte, error) {
	if len(s.frames) == 0 {
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

type recordingOpener struct {
	url   string
	creds media.Credentials
	src   *sliceSource
	err   error
}

func (o *recordingOpener) Open(_ context.Context, url string, creds media.Credentials) (media.FrameSource, error) {
	o.url, o.creds = url, creds
	if o.err != nil {
		return nil, o.err
	}
	return o.src, nil
}

func newCameraService(t *testing.T, opener media.Opener) *service.CameraService {
	t.Helper()

	sealer, err := cryptox.NewSealer("test-secret", "camera-credentials")
	require.NoError(t, err)
	st, err := sqlite.NewStore(":memory:", sealer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &service.CameraService{Store: st, Opener: opener}
}

func TestCameraService_RecordCreated(t *testing.T) {
	t.Parallel()

	svc := newCameraService(t, &recordingOpener{})
	ctx := context.Background()

	t.Run("id from vendor, default url", func(t *testing.T) {
		cam, err := svc.RecordCreated(ctx, map[string]any{
			"name":     "Door",
			"ip":       "10.0.0.7",
			"port":     float64(8554),
			"username": "viewer",
			"password": "hunter2",
		}, json.RawMessage(`{"id":"cam-42","message":"ok"}`))
		require.NoError(t, err)
		require.Equal(t, "cam-42", cam.ID)
		require.Equal(t, "rtsp://10.0.0.7:8554/stream", cam.URL)

		got, err := svc.Get(ctx, "cam-42")
		require.NoError(t, err)
		require.Equal(t, "Door", got.Name)
		require.Equal(t, "hunter2", got.Password)
	})

	t.Run("nested numeric id", func(t *testing.T) {
		cam, err := svc.RecordCreated(ctx, map[string]any{"url": "rtsp://cam/live"},
			json.RawMessage(`{"data":{"id":17}}`))
		require.NoError(t, err)
		require.Equal(t, "17", cam.ID)
		require.Equal(t, "rtsp://cam/live", cam.URL)
	})

	t.Run("minted id", func(t *testing.T) {
		cam, err := svc.RecordCreated(ctx, map[string]any{"ip": "10.0.0.9"}, json.RawMessage(`{}`))
		require.NoError(t, err)
		require.Len(t, cam.ID, 26)
		require.Equal(t, "rtsp://10.0.0.9:554/stream", cam.URL)
	})

	t.Run("no location", func(t *testing.T) {
		cam, err := svc.RecordCreated(ctx, map[string]any{"name": "nowhere"}, json.RawMessage(`{"id":"cam-x"}`))
		require.NoError(t, err)
		require.Empty(t, cam.ID)

		_, err = svc.Get(ctx, "cam-x")
		require.ErrorIs(t, err, service.ErrCameraNotFound)
	})
}

func TestCameraService_RecordModified(t *testing.T) {
	t.Parallel()

	svc := newCameraService(t, &recordingOpener{})
	ctx := context.Background()

	_, err := svc.RecordCreated(ctx, map[string]any{
		"name": "Door", "url": "rtsp://10.0.0.7/live", "username": "viewer", "password": "old",
	}, json.RawMessage(`{"id":"cam-1"}`))
	require.NoError(t, err)

	require.NoError(t, svc.RecordModified(ctx, "cam-1", map[string]any{"name": "Back door", "password": "new"}))

	got, err := svc.Get(ctx, "cam-1")
	require.NoError(t, err)
	require.Equal(t, "Back door", got.Name)
	require.Equal(t, "rtsp://10.0.0.7/live", got.URL)
	require.Equal(t, "viewer", got.Username)
	require.Equal(t, "new", got.Password)

	t.Run("unknown camera without location is ignored", func(t *testing.T) {
		require.NoError(t, svc.RecordModified(ctx, "cam-x", map[string]any{"name": "Ghost"}))
		_, err := svc.Get(ctx, "cam-x")
		require.ErrorIs(t, err, service.ErrCameraNotFound)
	})

	t.Run("unknown camera with location is created", func(t *testing.T) {
		require.NoError(t, svc.RecordModified(ctx, "cam-y", map[string]any{"ip": "10.0.0.8", "port": "554"}))
		got, err := svc.Get(ctx, "cam-y")
		require.NoError(t, err)
		require.Equal(t, "rtsp://10.0.0.8:554/stream", got.URL)
	})
}

func TestCameraService_Snapshot(t *testing.T) {
	t.Parallel()

	frame := []byte{0xFF, 0xD8, 1, 0xFF, 0xD9}
	opener := &recordingOpener{src: &sliceSource{frames: [][]byte{frame}}}
	svc := newCameraService(t, opener)
	ctx := context.Background()

	_, err := svc.RecordCreated(ctx, map[string]any{
		"url": "rtsp://10.0.0.7/live", "username": "viewer", "password": "pw",
	}, json.RawMessage(`{"id":"cam-1"}`))
	require.NoError(t, err)

	got, err := svc.Snapshot(ctx, "cam-1")
	require.NoError(t, err)
	require.Equal(t, frame, got)
	require.True(t, opener.src.closed)
	require.Equal(t, "rtsp://10.0.0.7/live", opener.url)
	require.Equal(t, media.Credentials{Username: "viewer", Password: "pw"}, opener.creds)

	t.Run("unknown camera", func(t *testing.T) {
		_, err := svc.Snapshot(ctx, "nope")
		require.ErrorIs(t, err, service.ErrCameraNotFound)
	})

	t.Run("source without frames", func(t *testing.T) {
		opener.src = &sliceSource{}
		_, err := svc.Snapshot(ctx, "cam-1")
		require.ErrorIs(t, err, service.ErrCameraUnavailable)
	})

	t.Run("source unavailable", func(t *testing.T) {
		opener.err = errors.Join(media.ErrUnavailable, errors.New("connection refused"))
		_, err := svc.Snapshot(ctx, "cam-1")
		require.ErrorIs(t, err, service.ErrCameraUnavailable)
	})
}
