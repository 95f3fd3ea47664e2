package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Ouarghii/evento/internal/dbx"
	"github.com/Ouarghii/evento/internal/server/repositories/admins"
	"github.com/Ouarghii/evento/internal/server/repositories/contributors"
	"github.com/Ouarghii/evento/internal/server/repositories/events"
	"github.com/Ouarghii/evento/internal/server/repositories/tickets"
	"github.com/Ouarghii/evento/internal/server/repositories/users"
)

// MemoryDSN selects the in-process store instead of Postgres.
const MemoryDSN = "memory://"

// RepositoryManager vends repositories bound to a DBTX, so the same code
// runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	// RunInTx runs fn in a transaction where the backend supports one.
	RunInTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error

	Users(db dbx.DBTX) users.Repository
	Contributors(db dbx.DBTX) contributors.Repository
	Admins(db dbx.DBTX) admins.Repository
	Events(db dbx.DBTX) events.Repository
	Tickets(db dbx.DBTX) tickets.Repository
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open picks a backend by DSN. The returned *sql.DB is nil for the memory
// backend; callers pass it back to the manager unchanged.
func Open(ctx context.Context, dsn string) (RepositoryManager, *sql.DB, error) {
	if strings.HasPrefix(dsn, MemoryDSN) {
		return NewMemoryRepositoryManager(), nil, nil
	}

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	return NewPostgresRepositoryManager(), db, nil
}
