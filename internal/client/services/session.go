// Package services contains application services for the CityGuardian client.
// This file defines the session store: the single owner of "who is signed in"
// for the terminal client, backed by the local SQLite database.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/client"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/repositories/metadata"
	"github.com/Shivamkillarikar/CityGuardian/internal/common"
	"github.com/Shivamkillarikar/CityGuardian/internal/dbx"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
)

// RegisterInput is the registration form as typed by the user.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Address  string
}

// SessionStore keeps the signed-in user and token in memory and in durable
// storage. The two are always present together or absent together.
//
// Contract:
//   - Init: restore the persisted session, dropping anything incomplete.
//   - Login / Register: authenticate with the server, then persist and publish.
//   - Logout: forget the session locally.
//   - RequireAuthenticated: gate for protected actions.
//
// Safe for concurrent use.
type SessionStore struct {
	api client.Client
	db  *sql.DB
	log logging.Logger

	mu    sync.RWMutex
	user  *api.User
	token string
}

// NewSessionStore constructs a SessionStore bound to the API client and the
// local database. Call Init before use.
func NewSessionStore(c client.Client, db *sql.DB, log logging.Logger) *SessionStore {
	return &SessionStore{api: c, db: db, log: log}
}

func (s *SessionStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Init loads the persisted session. Missing, corrupt or partial data leaves
// the store unauthenticated and the leftovers are removed. Only a storage
// read failure is returned.
func (s *SessionStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user, s.token = nil, ""

	repo := s.repo(s.db)

	rawUser, err := repo.Get(ctx, common.SessionUserKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	rawToken, err := repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if rawUser == nil && rawToken == nil {
		return nil
	}

	user, ok := decodeUser(rawUser)
	if !ok || len(rawToken) == 0 {
		s.log.Warn(ctx, "discarding incomplete session",
			"has_user", rawUser != nil, "user_valid", ok, "has_token", len(rawToken) > 0)
		if err := s.clearStored(ctx); err != nil {
			s.log.Warn(ctx, "failed to clear incomplete session", logging.ErrorAttrs(err)...)
		}
		return nil
	}

	s.user, s.token = user, string(rawToken)
	return nil
}

func decodeUser(raw []byte) (*api.User, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var u api.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		return nil, false
	}
	return &u, true
}

// Login authenticates with the server. On any failure the current session is
// left untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// Register creates an account and signs in as it. On any failure the current
// session is left untouched.
func (s *SessionStore) Register(ctx context.Context, in RegisterInput) (*api.User, error) {
	resp, err := s.api.Register(ctx, api.RegisterRequest{
		Name:     in.Name,
		Surname:  in.Surname,
		Email:    in.Email,
		Password: in.Password,
		Address:  in.Address,
	})
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// establish persists both keys in one transaction and only then swaps the
// in-memory state.
func (s *SessionStore) establish(ctx context.Context, resp *api.AuthResponse) (*api.User, error) {
	if resp.Token == "" || resp.User.ID == "" {
		return nil, fmt.Errorf("%w: missing user or token", client.ErrUnexpected)
	}

	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.SessionUserKey, rawUser); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionTokenKey, []byte(resp.Token))
	})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	user := resp.User
	s.user, s.token = &user, resp.Token

	s.log.Info(ctx, "signed in", "user_id", user.ID)

	u := user
	return &u, nil
}

// Logout forgets the session. Memory is always cleared; a storage failure is
// returned so the caller can report that the token may still be on disk.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user, s.token = nil, ""

	if err := s.clearStored(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// clearStored removes both persisted keys in one transaction.
func (s *SessionStore) clearStored(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, common.SessionUserKey, common.SessionTokenKey)
	})
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// User returns a copy of the signed-in user, or nil.
func (s *SessionStore) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// RequireAuthenticated returns client.ErrUnauthenticated unless a session is
// active. Every protected action goes through it.
func (s *SessionStore) RequireAuthenticated() error {
	if !s.IsAuthenticated() {
		return client.ErrUnauthenticated
	}
	return nil
}

// Profile fetches the signed-in user's profile from the server.
func (s *SessionStore) Profile(ctx context.Context) (*api.User, error) {
	if err := s.RequireAuthenticated(); err != nil {
		return nil, err
	}
	return s.api.Profile(ctx, s.Token())
}
