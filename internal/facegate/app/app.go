package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/facegate/internal/facegate/http"
	"github.com/aussiebroadwan/facegate/internal/facegate/media"
	"github.com/aussiebroadwan/facegate/internal/facegate/service"
	"github.com/aussiebroadwan/facegate/internal/facegate/store"
	"github.com/aussiebroadwan/facegate/internal/facegate/store/drivers/sqlite"
	"github.com/aussiebroadwan/facegate/pkg/airaface"
	"github.com/aussiebroadwan/facegate/pkg/cryptox"
	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "1.0.0"
)

// Application encapsulates the gateway with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db    store.Store
	aira  *airaface.Client
	media media.Opener

	// Services
	cameraService    *service.CameraService
	keepaliveService *service.KeepaliveService // nil when disabled

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "facegate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	app.warnUnsafeSettings()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.keepaliveService != nil {
		app.keepaliveService.Start()
	}

	app.logger.Info("facegate starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"aira_server", app.aira.Config().ServerURL(),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down facegate...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Open camera streams end when their request context is cancelled
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.keepaliveService != nil {
		app.keepaliveService.Stop()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("facegate stopped")
	return nil
}

func (app *Application) warnUnsafeSettings() {
	if app.cfg.AiraInsecureTLS {
		app.logger.Warn("vendor TLS certificate verification is disabled",
			"setting", "AIRA_TLS_INSECURE_SKIP_VERIFY",
		)
	}
	if app.cfg.SecretKey == DefaultSecretKey && app.cfg.Env != "dev" {
		app.logger.Warn("SECRET_KEY is the built-in default, camera credentials are not protected",
			"env", app.cfg.Env,
		)
	}
}

// initDatabase opens the camera store and applies migrations
func (app *Application) initDatabase() error {
	sealer, err := cryptox.NewSealer(app.cfg.SecretKey, "camera-credentials")
	if err != nil {
		return fmt.Errorf("failed to derive camera credential key: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn, sealer)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices builds the vendor client and the services around it
func (app *Application) initServices() {
	app.aira = airaface.New(airaface.Config{
		Protocol:             app.cfg.AiraProtocol,
		Host:                 app.cfg.AiraServerIP,
		Port:                 app.cfg.AiraServerPort,
		Username:             app.cfg.AiraUsername,
		Password:             app.cfg.AiraPassword,
		Timeout:              app.cfg.AiraRequestTimeout,
		InsecureSkipVerify:   app.cfg.AiraInsecureTLS,
		RetryOnAuthRejection: app.cfg.AiraRetryOnAuthReject,
	})

	app.media = &media.FFmpegOpener{Path: app.cfg.FFmpegPath}
	app.cameraService = &service.CameraService{
		Store:  app.db,
		Opener: app.media,
	}

	if app.cfg.TokenKeepaliveInterval > 0 {
		app.keepaliveService = service.NewKeepaliveService(
			app.aira.Tokens,
			app.logger,
			app.cfg.TokenKeepaliveInterval,
			nil,
		)
	} else {
		app.logger.Info("token keepalive disabled")
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.aira.Config().ServerURL(),
		app.cfg.AiraServerIP,
		app.logger,
	)

	router.Forwarder = app.aira
	router.Tokens = app.aira
	router.CameraService = app.cameraService
	router.ApplyRoutes()

	app.router = router

	// No WriteTimeout: camera streams stay open for as long as the client watches
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
