package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/client"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/config"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/services"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
)

// Session is the part of services.SessionStore the CLI depends on.
type Session interface {
	Login(ctx context.Context, email, password string) (*api.User, error)
	Register(ctx context.Context, in services.RegisterInput) (*api.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	User() *api.User
	RequireAuthenticated() error
	Profile(ctx context.Context) (*api.User, error)
}

// HealthChecker probes the server.
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

type App struct {
	config  *config.Config
	session Session
	health  HealthChecker
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer

	// answers from the last failed attempt, offered as defaults
	loginDraft    loginForm
	registerDraft registerForm
}

// NewApp opens the session database, restores any saved session and returns
// an App reading from stdin.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing database", append([]any{"path", c.SessionDB}, logging.ErrorAttrs(err)...)...)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	session := services.NewSessionStore(apiClient, db, log)

	if err := session.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  c,
		session: session,
		health:  apiClient,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil {
		return "(" + u.Email + ")"
	}
	return ""
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to CityGuardian CLI (type 'help' for commands)")
	if u := a.session.User(); u != nil {
		printlnFn("Signed in as", u.Email)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the session database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
