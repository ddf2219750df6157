package repomanager

import (
	"context"
	"database/sql"

	"github.com/Shivamkillarikar/CityGuardian/internal/dbx"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and owns the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
