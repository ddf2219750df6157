// Package auth issues and verifies the signed session tokens handed to
// clients after registration or login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Shivamkillarikar/CityGuardian/internal/common"
)

// DefaultLifetime is used when neither the caller nor the issuer picks one.
const DefaultLifetime = 7 * 24 * time.Hour

// Claims carried by a session token. The subject (user id) lives in
// RegisteredClaims.Subject.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Issuer signs and verifies HS256 session tokens with a single secret.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// ErrEmptySecret is returned by NewIssuer when no signing secret is given.
var ErrEmptySecret = errors.New("token secret must not be empty")

// NewIssuer creates an Issuer. A zero lifetime selects DefaultLifetime.
func NewIssuer(secret []byte, lifetime time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if lifetime == 0 {
		lifetime = DefaultLifetime
	}
	return &Issuer{secret: secret, lifetime: lifetime, now: time.Now}, nil
}

// Issue signs a token for subjectID. A zero lifetime selects the issuer's
// default; a negative one yields a token that is already expired.
func (i *Issuer) Issue(subjectID string, claims Claims, lifetime time.Duration) (string, error) {
	if lifetime == 0 {
		lifetime = i.lifetime
	}

	now := i.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry. It returns
// common.ErrTokenExpired for tokens past exp and common.ErrTokenInvalid for
// everything else that fails.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}

// Lifetime returns the default token lifetime.
func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}
