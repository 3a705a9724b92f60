package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galhub/galhub/internal/server/captcha"
	httpapi "github.com/galhub/galhub/internal/server/http"
	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/internal/server/store"
	"github.com/galhub/galhub/internal/server/store/drivers/sqlite"
	"github.com/galhub/galhub/pkg/httpx"
	"github.com/galhub/galhub/pkg/jwtx"
	"github.com/galhub/galhub/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	// devTokenSecret keeps local development working without env setup.
	// tokenSecret refuses to fall back to it when ENV=prod.
	devTokenSecret = "galhub-dev-secret-do-not-use-in-prod"
)

// Application wires the store, services and HTTP server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	challenges *captcha.Store

	tokenService   *service.TokenService
	identity       *service.IdentityService
	catalogService *service.CatalogService
	reviewService  *service.ReviewService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "galhub",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	secret, err := app.tokenSecret()
	if err != nil {
		return nil, err
	}
	signer, err := jwtx.NewHS256(secret)
	if err != nil {
		return nil, fmt.Errorf("initialize token signer: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.challenges = captcha.NewStore(cfg.CaptchaTTL, cfg.CaptchaSweepInterval, app.logger)
	app.initServices(signer)
	app.initHTTP(signer)

	if err := app.bootstrapAdmin(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// bootstrapAdmin seeds the configured admin account, if any. Registration
// only ever produces regular users, so the first admin has to come from
// operator configuration.
func (app *Application) bootstrapAdmin() error {
	if app.cfg.AdminUsername == "" {
		return nil
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.identity.EnsureAdmin(ctx, app.cfg.AdminUsername, app.cfg.AdminEmail, app.cfg.AdminPassword); err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}
	return nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.challenges.Start()

	app.logger.Info("galhub server starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully stops the server, the challenge sweeper and the
// database, in that order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down galhub server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.challenges.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("galhub server stopped")
	return nil
}

// tokenSecret resolves the session token secret. Prod deployments must
// set TOKEN_SECRET; dev gets a fixed fallback with a loud warning.
func (app *Application) tokenSecret() ([]byte, error) {
	if app.cfg.TokenSecret != "" {
		return []byte(app.cfg.TokenSecret), nil
	}
	if app.cfg.Env == "prod" {
		return nil, errors.New("TOKEN_SECRET must be set when ENV=prod")
	}
	app.logger.Warn("TOKEN_SECRET not set, using the built-in dev secret")
	return []byte(devTokenSecret), nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
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

func (app *Application) initServices(signer *jwtx.HS256) {
	app.tokenService = &service.TokenService{
		Signer: signer,
		TTL:    app.cfg.TokenTTL,
	}
	app.identity = &service.IdentityService{
		Store:      app.db,
		Tokens:     app.tokenService,
		Challenges: app.challenges,
		HashCost:   app.cfg.BcryptCost,
	}
	app.catalogService = &service.CatalogService{Store: app.db}
	app.reviewService = &service.ReviewService{Store: app.db}
}

func (app *Application) initHTTP(signer *jwtx.HS256) {
	router := httpapi.NewRouter(
		signer,
		BuildVersion,
		app.db,
		app.challenges,
		app.logger,
	)

	router.Identity = app.identity
	router.Catalog = app.catalogService
	router.Reviews = app.reviewService
	if len(app.cfg.CORSOrigins) > 0 {
		router.Use(httpx.CORS(app.cfg.CORSOrigins))
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
