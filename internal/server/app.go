// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/Shivamkillarikar/CityGuardian/internal/cryptox"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/auth"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/config"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/repositories/repomanager"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/rest"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/services"
)

const (
	dbConnectRetries = 5
	dbConnectBackoff = 500 * time.Millisecond
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	issuer      *auth.Issuer
	userService *services.UserService
}

// NewApp prepares storage and services. With an empty DSN the credential
// store lives in memory and is lost on restart.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	if c.UsesDevSecret() {
		logger.Warn(ctx, "using the built-in development token secret; set JWT_SECRET in production")
	}

	issuer, err := auth.NewIssuer([]byte(c.SecretKey), c.TokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}
	logger.Info(ctx, "token issuer ready", "token_lifetime", issuer.Lifetime().String())

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory credential store")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err = openDB(ctx, c.DatabaseDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cryptox.NewArgon2idHasher(), issuer, logger.With("module", "user_service"))

	return &App{config: c, logger: logger, db: db, issuer: issuer, userService: us}, nil
}

// openDB opens a pgx connection pool and waits for the database to answer.
func openDB(ctx context.Context, dsn string, logger logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(dbConnectRetries, retry.NewExponential(dbConnectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			logger.Warn(ctx, "database not ready, retrying", logging.ErrorAttrs(err)...)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewHTTPServer(rest.Options{
		Address:        app.config.EndpointAddrHTTP,
		AllowedOrigins: app.config.AllowedOrigins,
	}, app.logger, app.userService, app.issuer, nil)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", logging.ErrorAttrs(err)...)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeDB(app.db)
	app.logger.Info(ctx, "App stopped")
}
