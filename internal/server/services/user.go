// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and profile lookup, and
// issues session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/Shivamkillarikar/CityGuardian/internal/common"
	"github.com/Shivamkillarikar/CityGuardian/internal/cryptox"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/auth"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/models"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/repositories/repomanager"
)

// dummyPasswordHash is verified against when the email is unknown so that
// unknown-email and wrong-password logins cost the same. It matches nothing.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subjectID string, claims auth.Claims, lifetime time.Duration) (string, error)
}

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Address  string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.PublicUser
	Token string
}

// ValidationError describes a rejected input. It matches common.ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == common.ErrValidation }

// UserService provides authentication-related operations:
// - Register: create users and mint a token
// - Login: verify credentials and mint a token
// - GetProfile: load the public view of a user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
	issuer      TokenIssuer
	log         logging.Logger
}

// NewUserService constructs a UserService. db may be nil when the repository
// manager does not need a connection.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher, issuer TokenIssuer, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		log:         log,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in RegisterInput) normalize() RegisterInput {
	return RegisterInput{
		Name:     strings.TrimSpace(in.Name),
		Surname:  strings.TrimSpace(in.Surname),
		Email:    NormalizeEmail(in.Email),
		Password: in.Password,
		Address:  strings.TrimSpace(in.Address),
	}
}

func (in RegisterInput) validate() error {
	if in.Name == "" || in.Surname == "" || in.Email == "" || in.Password == "" {
		return &ValidationError{Message: "Missing required fields"}
	}
	if !looksLikeEmail(in.Email) {
		return &ValidationError{Message: "Invalid email address"}
	}
	return nil
}

func looksLikeEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1
}

// Register creates a new account. The email must be unused; the new user is
// never an administrator.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, oops.Code("AUTH_DUPLICATE_EMAIL").With("email", in.Email).Wrap(common.ErrDuplicateEmail)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internal("AUTH_REGISTER_FAILED", "lookup email", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internal("AUTH_REGISTER_FAILED", "hash password", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: hash,
		IsAdmin:      false,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, oops.Code("AUTH_DUPLICATE_EMAIL").With("email", in.Email).Wrap(err)
		}
		return nil, internal("AUTH_REGISTER_FAILED", "create user", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login verifies credentials and mints a fresh token. Unknown emails and wrong
// passwords produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "Please provide email and password"}
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(password, dummyPasswordHash)
			return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(common.ErrInvalidCredentials)
		}
		return nil, internal("AUTH_LOGIN_FAILED", "lookup email", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, internal("AUTH_LOGIN_FAILED", "verify password", oops.With("user_id", user.ID).Wrap(err))
	}
	if !ok {
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").With("user_id", user.ID).Wrap(common.ErrInvalidCredentials)
	}

	if s.hasher.NeedsUpgrade(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// GetProfile returns the public view of the user with the given id.
func (s *UserService) GetProfile(ctx context.Context, subjectID string) (*models.PublicUser, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, oops.Code("AUTH_USER_NOT_FOUND").With("user_id", subjectID).Wrap(err)
		}
		return nil, internal("AUTH_PROFILE_FAILED", "get user", err)
	}

	return user.Public(), nil
}

// --- helpers below ---

func (s *UserService) issueToken(user *models.User) (string, error) {
	token, err := s.issuer.Issue(user.ID, auth.Claims{Email: user.Email, IsAdmin: user.IsAdmin}, 0)
	if err != nil {
		return "", internal("AUTH_TOKEN_FAILED", "issue token", err)
	}
	return token, nil
}

// upgradeHash replaces a legacy hash. Failures are logged and ignored.
func (s *UserService) upgradeHash(ctx context.Context, user *models.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.repomanager.Users(s.db).UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.log.Warn(ctx, "password hash upgrade failed", append([]any{"user_id", user.ID}, logging.ErrorAttrs(err)...)...)
		return
	}
	s.log.Info(ctx, "password hash upgraded", "user_id", user.ID)
}

func internal(code, operation string, err error) error {
	return oops.Code(code).With("operation", operation).Wrap(fmt.Errorf("%w: %w", common.ErrorInternal, err))
}
