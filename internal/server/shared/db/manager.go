// Package db wires the PostgreSQL connection, migrations and repositories
// together behind a small manager interface.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
