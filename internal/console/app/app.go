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

	httpapi "github.com/pingdesk/pingdesk/internal/console/http"
	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/internal/console/store/drivers/sqlite"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the console service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	client *pingone.Client

	// Services
	flowService         *service.FlowService
	registrationService *service.RegistrationService
	authService         *service.AuthenticationService
	syncService         *service.DeviceSyncService
	policyService       *service.PolicyService
	tokenService        *service.WorkerTokenService
	flagService         *service.FeatureFlagService
	logService          *service.DebugLogService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "console-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.client = pingone.NewClient(pingone.ClientConfig{
		APIBaseURL:    cfg.PingOneAPIBaseURL,
		AuthBaseURL:   cfg.PingOneAuthBaseURL,
		EnvironmentID: cfg.EnvironmentID,
		ClientID:      cfg.ClientID,
		ClientSecret:  cfg.ClientSecret,
		Region:        cfg.Region,
	})

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Start background workers
	app.tokenService.Start()
	app.housekeepingService.Start()

	app.logger.Info("console service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop background workers
	app.housekeepingService.Stop()
	app.tokenService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("console service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = service.NewWorkerTokenService(
		app.client,
		app.logger,
		app.cfg.TokenRefreshInterval,
	)

	app.flagService = &service.FeatureFlagService{Store: app.db}
	app.logService = &service.DebugLogService{Store: app.db}

	app.flowService = &service.FlowService{
		Store:   app.db,
		Tokens:  app.tokenService,
		Flags:   app.flagService,
		FlowTTL: app.cfg.FlowTTL,
	}

	app.registrationService = &service.RegistrationService{
		Store:      app.db,
		Client:     app.client,
		Tokens:     app.tokenService,
		PendingTTL: app.cfg.PendingTTL,
	}

	app.authService = &service.AuthenticationService{
		Store:  app.db,
		Client: app.client,
		Tokens: app.tokenService,
		Region: app.cfg.Region,
	}

	app.syncService = &service.DeviceSyncService{
		Store:  app.db,
		Client: app.client,
		Tokens: app.tokenService,
	}

	app.policyService = service.NewPolicyService(
		app.client,
		app.tokenService,
		app.cfg.EnvironmentID,
		app.cfg.PolicyCacheTTL,
	)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.LogRetention,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.cfg.APIKeyFingerprints,
		app.logger,
	)

	// Wire services to router
	router.FlowService = app.flowService
	router.RegistrationService = app.registrationService
	router.AuthService = app.authService
	router.SyncService = app.syncService
	router.PolicyService = app.policyService
	router.TokenService = app.tokenService
	router.FlagService = app.flagService
	router.LogService = app.logService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
