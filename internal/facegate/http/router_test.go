package http_test

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/facegate/internal/facegate/service"
	"github.com/aussiebroadwan/facegate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestRouter_Index(t *testing.T) {
	t.Parallel()
	g := newGateway(t)

	rec := g.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Equal(t, "running", body["status"])
	require.Equal(t, "airaFace API Integration", body["service"])
	require.Equal(t, "1.0.0", body["version"])
	require.Equal(t, g.vendor.srv.URL, body["aira_server"])
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()
	g := newGateway(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nope"},
		{http.MethodDelete, "/api/persons"},
		{http.MethodPatch, "/api/cameras/1"},
		{http.MethodGet, "/api/token/refresh"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := g.do(t, tc.method, tc.path, nil)
			require.Equal(t, http.StatusNotFound, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			require.Equal(t, "gateway", rec.Header().Get(httpx.ErrorSourceHeader))
			require.JSONEq(t, `{"error":"Endpoint not found"}`, rec.Body.String())
		})
	}

	require.Empty(t, g.vendor.recorded())
	require.Zero(t, g.vendor.logins.Load())
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		g := newGateway(t)

		rec := g.do(t, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy","aira_api":"connected","token_valid":true,"database":"connected"}`, rec.Body.String())

		// The cached token is reused.
		g.do(t, http.MethodGet, "/api/health", nil)
		require.EqualValues(t, 1, g.vendor.logins.Load())
	})

	t.Run("vendor rejects login", func(t *testing.T) {
		g := newGateway(t)
		g.vendor.loginStatus.Store(http.StatusServiceUnavailable)

		rec := g.do(t, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decode(t, rec)
		require.Equal(t, "unhealthy", body["status"])
		require.Equal(t, "disconnected", body["aira_api"])
		require.Contains(t, body["error"], "Token generation failed: 503")
		require.NotContains(t, body, "token_valid")
	})

	t.Run("camera store closed", func(t *testing.T) {
		g := newGateway(t)
		require.NoError(t, g.cameras.Store.Close())

		rec := g.do(t, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		require.Equal(t, "healthy", body["status"])
		require.Equal(t, "disconnected", body["database"])
	})
}

func TestRouter_TokenRefresh(t *testing.T) {
	t.Parallel()

	t.Run("forces a new login", func(t *testing.T) {
		g := newGateway(t)
		g.do(t, http.MethodGet, "/api/health", nil)

		before := time.Now().UTC()
		rec := g.do(t, http.MethodPost, "/api/token/refresh", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		require.Equal(t, "Token refreshed successfully", body["message"])
		require.Equal(t, "tok-2", body["token"])

		expires, err := time.Parse(time.RFC3339, body["expires_at"].(string))
		require.NoError(t, err)
		require.WithinDuration(t, before.Add(55*time.Minute), expires, 5*time.Second)
	})

	t.Run("login failure", func(t *testing.T) {
		g := newGateway(t)
		g.vendor.loginStatus.Store(http.StatusForbidden)

		rec := g.do(t, http.MethodPost, "/api/token/refresh", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"error":"Token generation failed: 403 - {\"message\":\"login rejected\"}"}`, rec.Body.String())
	})
}

func TestRouter_Persons(t *testing.T) {
	t.Parallel()
	g := newGateway(t)

	t.Run("list forwards query", func(t *testing.T) {
		g.vendor.respond(http.StatusOK, `{"persons":[]}`)

		rec := g.do(t, http.MethodGet, "/api/persons?group=staff&page=2", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"persons":[]}`, rec.Body.String())

		call := g.vendor.last(t)
		require.Equal(t, http.MethodGet, call.Method)
		require.Equal(t, "/airafacelite/queryperson", call.Path)
		require.Equal(t, "staff", call.Query.Get("group"))
		require.Equal(t, "2", call.Query.Get("page"))
		require.Equal(t, "tok-1", call.Token)
	})

	t.Run("create requires fullname", func(t *testing.T) {
		before := len(g.vendor.recorded())

		for _, body := range []any{map[string]any{"employeeno": "A1"}, map[string]any{"fullname": "  "}, nil} {
			rec := g.do(t, http.MethodPost, "/api/persons", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.JSONEq(t, `{"error":"fullname is required"}`, rec.Body.String())
		}
		require.Len(t, g.vendor.recorded(), before, "no vendor call for an invalid person")
	})

	t.Run("create forwards body", func(t *testing.T) {
		g.vendor.respond(http.StatusOK, `{"id":"p-1"}`)

		rec := g.do(t, http.MethodPost, "/api/persons", map[string]any{"fullname": "Ada Lovelace", "employeeno": "A1"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"id":"p-1"}`, rec.Body.String())

		call := g.vendor.last(t)
		require.Equal(t, http.MethodPost, call.Method)
		require.Equal(t, "/airafacelite/createperson", call.Path)
		require.Equal(t, map[string]any{"fullname": "Ada Lovelace", "employeeno": "A1"}, call.Body)
	})

	t.Run("modify merges path id", func(t *testing.T) {
		g.vendor.respond(http.StatusOK, `{}`)

		rec := g.do(t, http.MethodPut, "/api/persons/p-1", map[string]any{"fullname": "Ada King", "id": "spoofed"})
		require.Equal(t, http.StatusOK, rec.Code)

		call := g.vendor.last(t)
		require.Equal(t, http.MethodPost, call.Method)
		require.Equal(t, "/airafacelite/modifyperson", call.Path)
		require.Equal(t, "p-1", call.Body["id"])
		require.Equal(t, "Ada King", call.Body["fullname"])
	})

	t.Run("invalid JSON", func(t *testing.T) {
		rec := g.do(t, http.MethodPut, "/api/persons/p-1", `{"fullname":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"Invalid JSON body"}`, rec.Body.String())
	})

	t.Run("vendor status passes through", func(t *testing.T) {
		g.vendor.respond(http.StatusNotFound, `{"message":"no such person"}`)

		rec := g.do(t, http.MethodPut, "/api/persons/p-404", map[string]any{"fullname": "X"})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"message":"no such person"}`, rec.Body.String())
		require.Empty(t, rec.Header().Get(httpx.ErrorSourceHeader))
	})

	t.Run("vendor answers with non-JSON", func(t *testing.T) {
		g.vendor.respond(http.StatusBadGateway, `<html>proxy error</html>`)

		rec := g.do(t, http.MethodGet, "/api/persons", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, decode(t, rec)["error"], "API request failed")
	})
}

func TestRouter_Events(t *testing.T) {
	t.Parallel()
	g := newGateway(t)

	t.Run("create fills defaults", func(t *testing.T) {
		rec := g.do(t, http.MethodPost, "/api/events", map[string]any{
			"name":        "door-alert",
			"port":        8080,
			"data_type":   "XML",
			"action_type": "mqtt",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		call := g.vendor.last(t)
		require.Equal(t, "/airafacelite/createeventhandle", call.Path)
		require.Equal(t, map[string]any{
			"action_type":              "http",
			"name":                     "door-alert",
			"enable":                   true,
			"group_list":               []any{"All Person"},
			"divice_groups":            []any{},
			"temperature_trigger_rule": float64(0),
			"remarks":                  "",
			"https":                    true,
			"method":                   "GET",
			"host":                     "",
			"port":                     float64(8080),
			"data_type":                "JSON",
			"language":                 "en",
			"url":                      "",
			"custom_data":              "",
			"note":                     "",
		}, call.Body)
	})

	t.Run("modify merges path id", func(t *testing.T) {
		rec := g.do(t, http.MethodPut, "/api/events/ev-3", map[string]any{"enable": false})
		require.Equal(t, http.StatusOK, rec.Code)

		call := g.vendor.last(t)
		require.Equal(t, "/airafacelite/modifyeventhandle", call.Path)
		require.Equal(t, map[string]any{"id": "ev-3", "enable": false}, call.Body)
	})
}

func TestRouter_Recognitions(t *testing.T) {
	t.Parallel()
	g := newGateway(t)

	rec := g.do(t, http.MethodGet, "/api/recognitions?start_time=1714600000000&camera_id=c9&person_id=&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	call := g.vendor.last(t)
	require.Equal(t, http.MethodGet, call.Method)
	require.Equal(t, "/airafacelite/querypersonverifyresult", call.Path)
	require.Equal(t, "1714600000000", call.Query.Get("start_time"))
	require.Equal(t, "c9", call.Query.Get("camera_id"))
	require.NotContains(t, call.Query, "person_id")
	require.NotContains(t, call.Query, "end_time")
	require.NotContains(t, call.Query, "limit")
}

func TestRouter_WebsocketInfo(t *testing.T) {
	t.Parallel()
	g := newGateway(t)

	rec := g.do(t, http.MethodGet, "/api/websocket/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Equal(t, "ws://"+g.vendor.srv.Listener.Addr().String()+"/airafacelite/verifyresults", body["websocket_url"])

	example, ok := body["example_response"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Camera-5", example["channel"])
	require.Equal(t, map[string]any{"fullname": "John Doe", "employeeno": "A0001"}, example["person_info"])
	require.Empty(t, g.vendor.recorded())
}

func TestRouter_CamerasAndMedia(t *testing.T) {
	t.Parallel()
	g := newGateway(t)

	frame1 := []byte{0xFF, 0xD8, 1, 0xFF, 0xD9}
	frame2 := []byte{0xFF, 0xD8, 2, 2, 0xFF, 0xD9}

	t.Run("unknown camera", func(t *testing.T) {
		rec := g.do(t, http.MethodGet, "/api/camera/cam-7/snapshot", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"error":"Camera not found"}`, rec.Body.String())
	})

	t.Run("vendor failure is not recorded", func(t *testing.T) {
		g.vendor.respond(http.StatusBadRequest, `{"message":"duplicate"}`)

		rec := g.do(t, http.MethodPost, "/api/cameras", map[string]any{"name": "Dup", "ip": "10.0.0.1"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		_, err := g.cameras.Get(t.Context(), "cam-7")
		require.Error(t, err)
	})

	t.Run("create records camera", func(t *testing.T) {
		g.vendor.respond(http.StatusOK, `{"id":"cam-7"}`)

		rec := g.do(t, http.MethodPost, "/api/cameras", map[string]any{
			"name": "Lobby", "ip": "10.0.0.9", "username": "viewer", "password": "pw",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"id":"cam-7"}`, rec.Body.String())
		require.Equal(t, "/airafacelite/createcamera", g.vendor.last(t).Path)

		cam, err := g.cameras.Get(t.Context(), "cam-7")
		require.NoError(t, err)
		require.Equal(t, "rtsp://10.0.0.9:554/stream", cam.URL)
		require.Equal(t, "pw", cam.Password)
	})

	t.Run("create without location is not recorded", func(t *testing.T) {
		g.vendor.respond(http.StatusOK, `{"id":"cam-x"}`)

		rec := g.do(t, http.MethodPost, "/api/cameras", map[string]any{"name": "nowhere"})
		require.Equal(t, http.StatusOK, rec.Code)

		_, err := g.cameras.Get(t.Context(), "cam-x")
		require.ErrorIs(t, err, service.ErrCameraNotFound)
	})

	t.Run("modify updates record", func(t *testing.T) {
		rec := g.do(t, http.MethodPut, "/api/cameras/cam-7", map[string]any{"name": "Lobby East"})
		require.Equal(t, http.StatusOK, rec.Code)

		call := g.vendor.last(t)
		require.Equal(t, "/airafacelite/modifycamera", call.Path)
		require.Equal(t, "cam-7", call.Body["id"])

		cam, err := g.cameras.Get(t.Context(), "cam-7")
		require.NoError(t, err)
		require.Equal(t, "Lobby East", cam.Name)
	})

	t.Run("list forwards query", func(t *testing.T) {
		g.vendor.respond(http.StatusOK, `{"cameras":[]}`)

		rec := g.do(t, http.MethodGet, "/api/cameras?status=online", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		call := g.vendor.last(t)
		require.Equal(t, "/airafacelite/querycamera", call.Path)
		require.Equal(t, "online", call.Query.Get("status"))
	})

	t.Run("unavailable source", func(t *testing.T) {
		rec := g.do(t, http.MethodGet, "/api/camera/cam-7/snapshot", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.JSONEq(t, `{"error":"Camera stream unavailable"}`, rec.Body.String())

		rec = g.do(t, http.MethodGet, "/api/camera/cam-7/stream", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("snapshot", func(t *testing.T) {
		g.setFrames(frame1, frame2)

		rec := g.do(t, http.MethodGet, "/api/camera/cam-7/snapshot", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
		require.Equal(t, frame1, rec.Body.Bytes())
		require.True(t, g.opened.Load().closed)
	})

	t.Run("stream", func(t *testing.T) {
		g.setFrames(frame1, frame2)

		rec := g.do(t, http.MethodGet, "/api/camera/cam-7/stream", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, rec.Flushed)
		require.True(t, g.opened.Load().closed)

		mediaType, params, err := mime.ParseMediaType(rec.Header().Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/x-mixed-replace", mediaType)

		mr := multipart.NewReader(rec.Body, params["boundary"])
		for _, want := range [][]byte{frame1, frame2} {
			part, err := mr.NextPart()
			require.NoError(t, err)
			got, err := io.ReadAll(part)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
		_, err = mr.NextPart()
		require.ErrorIs(t, err, io.EOF)
	})
}
