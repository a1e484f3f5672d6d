package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/facegate/internal/facegate/service"
	"github.com/aussiebroadwan/facegate/pkg/httpx"
	"github.com/aussiebroadwan/facegate/pkg/slogx"

	_ "github.com/aussiebroadwan/facegate/api/facegate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	serverURL    string
	serverHost   string
	logger       *slog.Logger

	Forwarder     Forwarder
	Tokens        TokenManager
	CameraService *service.CameraService // Optional: media routes answer 404 without it
}

func NewRouter(buildVersion, serverURL, serverHost string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		serverURL:    serverURL,
		serverHost:   serverHost,
		logger:       logger,
	}

	// Request logging first so panics recovered below are still logged
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerPersons()
	r.registerCameras()
	r.registerEvents()
	r.registerRecognitions()
	r.registerMedia()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Catch-all. Also answers known paths with an unsupported method, so
	// the mux never produces a plain-text 405.
	r.Mux.Handle("/", httpx.NotFound())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			facegate
//	@version		1.0.0
//	@description	REST gateway in front of an airaFace Lite face recognition server.
//	@description
//	@description	Vendor calls are authenticated with a cached session token that is refreshed automatically.
//	@description	Vendor responses are relayed with their original status code.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/facegate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:5000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}",
		httpx.Chain(&IndexHandler{Version: r.buildVersion, AiraServer: r.serverURL},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Health performs a login exchange only when the cached token is stale
	health := &HealthHandler{Tokens: r.Tokens}
	if r.CameraService != nil && r.CameraService.Store != nil {
		health.Store = r.CameraService.Store
	}
	r.Mux.Handle("GET /api/health",
		httpx.Chain(health,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Refresh always logs in again - strict limit
	r.Mux.Handle("POST /api/token/refresh",
		httpx.Chain(&TokenRefreshHandler{Tokens: r.Tokens},
			httpx.RateLimitByIP(httpx.TokenLimit),
		),
	)

	r.Mux.Handle("GET /api/websocket/info",
		httpx.Chain(&WebsocketInfoHandler{ServerHost: r.serverHost},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerPersons() {
	h := &PersonsHandler{Forwarder: r.Forwarder}

	r.Mux.Handle("GET /api/persons",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.ReadLimit),
		),
	)

	writes := httpx.RateLimitByIP(httpx.WriteLimit)
	r.Mux.Handle("POST /api/persons", httpx.Chain(http.HandlerFunc(h.HandleCreate), writes))
	r.Mux.Handle("PUT /api/persons/{id}", httpx.Chain(http.HandlerFunc(h.HandleModify), writes))
}

func (r *Router) registerCameras() {
	h := &CamerasHandler{Forwarder: r.Forwarder}
	if r.CameraService != nil {
		h.Cameras = r.CameraService
	}

	r.Mux.Handle("GET /api/cameras",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.ReadLimit),
		),
	)

	writes := httpx.RateLimitByIP(httpx.WriteLimit)
	r.Mux.Handle("POST /api/cameras", httpx.Chain(http.HandlerFunc(h.HandleCreate), writes))
	r.Mux.Handle("PUT /api/cameras/{id}", httpx.Chain(http.HandlerFunc(h.HandleModify), writes))
}

func (r *Router) registerEvents() {
	h := &EventsHandler{Forwarder: r.Forwarder}

	writes := httpx.RateLimitByIP(httpx.WriteLimit)
	r.Mux.Handle("POST /api/events", httpx.Chain(http.HandlerFunc(h.HandleCreate), writes))
	r.Mux.Handle("PUT /api/events/{id}", httpx.Chain(http.HandlerFunc(h.HandleModify), writes))
}

func (r *Router) registerRecognitions() {
	r.Mux.Handle("GET /api/recognitions",
		httpx.Chain(&RecognitionsHandler{Forwarder: r.Forwarder},
			httpx.RateLimitByIP(httpx.ReadLimit),
		),
	)
}

func (r *Router) registerMedia() {
	if r.CameraService == nil {
		return
	}
	h := &MediaHandler{Cameras: r.CameraService}

	// Each snapshot or stream starts a decoder process
	r.Mux.Handle("GET /api/camera/{id}/snapshot",
		httpx.Chain(http.HandlerFunc(h.HandleSnapshot),
			httpx.RateLimitByIP(httpx.ReadLimit),
		),
	)
	r.Mux.Handle("GET /api/camera/{id}/stream",
		httpx.Chain(http.HandlerFunc(h.HandleStream),
			httpx.RateLimitByIP(httpx.WriteLimit),
		),
	)
}
