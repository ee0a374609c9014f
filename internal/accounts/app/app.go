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

	httpapi "github.com/aussiebroadwan/accounts/internal/accounts/http"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/mongo"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "accounts"
)

// Application owns every long-lived dependency of the accounts service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	redis       redis.UniversalClient // nil without REDIS_ADDR
	credentials *cryptox.Credentials

	tokenService   *service.TokenService
	accountService *service.AccountService
	sessionService *service.SessionService
	throttle       *service.RedisSignInThrottle

	shutdownTracing func(context.Context) error

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	shutdownTracing, err := setupTracing(ctx, cfg.OTelEndpoint, serviceName, BuildVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.shutdownTracing = shutdownTracing

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("accounts service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"throttle", app.throttle != nil,
	)

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

// Shutdown drains the server, then releases the store, Redis and tracing.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.shutdownTracing(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

// initDatabase opens the configured store and applies its migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		db, err = mongo.NewStore(connectCtx, app.cfg.MongoURI, app.cfg.MongoDatabase)
	default:
		db, err = sqlite.NewStore(app.cfg.SQLiteDSN())
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", app.cfg.StoreDriver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "store", app.cfg.StoreDriver)
	return nil
}

// initServices builds the credential manager, token service and the
// account and session services on top of the store.
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.credentials, err = cryptox.NewCredentials(pepper, cryptox.DefaultParams)
	if err != nil {
		return err
	}

	secret := []byte(app.cfg.JWTSecret)
	if len(secret) == 0 {
		// Config.Validate only lets this through in dev.
		app.logger.Warn("no ACCOUNTS_JWT_SECRET set, using an ephemeral secret; tokens will not survive a restart")
		secret = []byte(cryptox.MustGenerateToken(cryptox.TokenSize256))
	}

	app.tokenService, err = service.NewTokenService(service.TokenConfig{
		Secret: secret,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.TokenTTL,
		Leeway: app.cfg.TokenLeeway,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	app.accountService = &service.AccountService{
		Store:  app.db,
		Hasher: app.credentials,
	}

	app.sessionService = &service.SessionService{
		Store:       app.db,
		Credentials: app.credentials,
		Tokens:      app.tokenService,
	}

	if app.cfg.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
		})
		app.throttle = service.NewRedisSignInThrottle(app.redis, app.cfg.SignInMaxAttempts, app.cfg.SignInLockout)
		app.sessionService.Throttle = app.throttle
		app.logger.Info("sign-in throttle enabled",
			"max_attempts", app.cfg.SignInMaxAttempts,
			"lockout", app.cfg.SignInLockout.String(),
		)
	}

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.TokenService = app.tokenService
	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.SecureCookie = app.cfg.SecureCookie
	router.TrustProxyHeaders = app.cfg.TrustProxyHeaders
	if app.throttle != nil {
		router.Throttle = app.throttle
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
