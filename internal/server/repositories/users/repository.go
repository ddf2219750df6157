// Package users is the credential store: it persists user records and looks
// them up by normalized email or by id.
package users

import (
	"context"

	"github.com/Shivamkillarikar/CityGuardian/internal/server/models"
)

// Repository stores user records. Emails are expected to be normalized
// (trimmed, lowercased) by the caller; uniqueness is case-insensitive.
type Repository interface {
	// Create inserts user and fills ID, CreatedAt and UpdatedAt.
	// Returns common.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail returns common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
