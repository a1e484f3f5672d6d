package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	facegatehttp "github.com/aussiebroadwan/facegate/internal/facegate/http"
	"github.com/aussiebroadwan/facegate/internal/facegate/media"
	"github.com/aussiebroadwan/facegate/internal/facegate/service"
	"github.com/aussiebroadwan/facegate/internal/facegate/store/drivers/sqlite"
	"github.com/aussiebroadwan/facegate/pkg/airaface"
	"github.com/aussiebroadwan/facegate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// vendorCall is one operational request seen by the fake vendor.
type vendorCall struct {
	Method string
	Path   string
	Query  url.Values
	Token  string
	Body   map[string]any
}

// fakeVendor stands in for the airaFace appliance. Logins succeed for
// admin/secret and hand out tok-1, tok-2, ...
type fakeVendor struct {
	srv    *httptest.Server
	logins atomic.Int32

	// loginStatus overrides the /generatetoken status when non-zero.
	loginStatus atomic.Int32

	mu     sync.Mutex
	calls  []vendorCall
	status int
	reply  string
}

func newFakeVendor(t *testing.T) *fakeVendor {
	t.Helper()

	v := &fakeVendor{status: http.StatusOK, reply: `{"message":"ok"}`}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /airafacelite/generatetoken", func(w http.ResponseWriter, r *http.Request) {
		n := v.logins.Add(1)
		if status := int(v.loginStatus.Load()); status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"login rejected"}`))
			return
		}

		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username != "admin" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": fmt.Sprintf("tok-%d", n)})
	})
	mux.HandleFunc("/airafacelite/", func(w http.ResponseWriter, r *http.Request) {
		call := vendorCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Token:  r.Header.Get("token"),
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &call.Body)
		}

		v.mu.Lock()
		v.calls = append(v.calls, call)
		status, reply := v.status, v.reply
		v.mu.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	})

	v.srv = httptest.NewServer(mux)
	t.Cleanup(v.srv.Close)
	return v
}

func (v *fakeVendor) respond(status int, reply string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status, v.reply = status, reply
}

func (v *fakeVendor) recorded() []vendorCall {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]vendorCall(nil), v.calls...)
}

func (v *fakeVendor) last(t *testing.T) vendorCall {
	t.Helper()
	calls := v.recorded()
	require.NotEmpty(t, calls, "vendor was not called")
	return calls[len(calls)-1]
}

// sliceSource serves a fixed list of frames then io.EOF.
type sliceSource struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (s *sliceSource) Next(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *sliceSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type gateway struct {
	router  *facegatehttp.Router
	vendor  *fakeVendor
	cameras *service.CameraService

	// frames is what the next opened source serves. Nil means the camera
	// is unreachable.
	frames atomic.Pointer[[][]byte]
	opened atomic.Pointer[sliceSource]
}

func newGateway(t *testing.T) *gateway {
	t.Helper()

	g := &gateway{vendor: newFakeVendor(t)}

	u, err := url.Parse(g.vendor.srv.URL)
	require.NoError(t, err)
	client := airaface.New(airaface.Config{
		Protocol: u.Scheme,
		Host:     u.Hostname(),
		Port:     u.Port(),
		Username: "admin",
		Password: "secret",
		Timeout:  2 * time.Second,
	})

	sealer, err := cryptox.NewSealer("test-secret", "camera-credentials")
	require.NoError(t, err)
	st, err := sqlite.NewStore(":memory:", sealer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	g.cameras = &service.CameraService{
		Store: st,
		Opener: media.OpenerFunc(func(context.Context, string, media.Credentials) (media.FrameSource, error) {
			frames := g.frames.Load()
			if frames == nil {
				return nil, fmt.Errorf("%w: connection refused", media.ErrUnavailable)
			}
			src := &sliceSource{frames: append([][]byte(nil), (*frames)...)}
			g.opened.Store(src)
			return src, nil
		}),
	}

	logger := slog.New(slog.DiscardHandler)
	g.router = facegatehttp.NewRouter("1.0.0", client.Config().ServerURL(), u.Host, logger)
	g.router.Forwarder = client
	g.router.Tokens = client
	g.router.CameraService = g.cameras
	g.router.ApplyRoutes()

	return g
}

func (g *gateway) setFrames(frames ...[]byte) { g.frames.Store(&frames) }

func (g *gateway) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
