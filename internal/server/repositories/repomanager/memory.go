package repomanager

import (
	"context"
	"database/sql"

	"github.com/Shivamkillarikar/CityGuardian/internal/dbx"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out the same process-local repositories
// regardless of the DBTX passed in. There is nothing to migrate.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}
