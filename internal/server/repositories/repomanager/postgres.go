// Package repomanager picks the storage backend from the database DSN and
// vends repositories bound to either the pool or a transaction. Postgres
// schema changes are applied with goose from the embedded migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ouarghii/evento/internal/dbx"
	"github.com/Ouarghii/evento/internal/server/migrations"
	"github.com/Ouarghii/evento/internal/server/repositories/admins"
	"github.com/Ouarghii/evento/internal/server/repositories/contributors"
	"github.com/Ouarghii/evento/internal/server/repositories/events"
	"github.com/Ouarghii/evento/internal/server/repositories/tickets"
	"github.com/Ouarghii/evento/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager builds the pgx-backed repositories.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (*PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (*PostgresRepositoryManager) Contributors(db dbx.DBTX) contributors.Repository {
	return contributors.NewPostgresRepository(db)
}

func (*PostgresRepositoryManager) Admins(db dbx.DBTX) admins.Repository {
	return admins.NewPostgresRepository(db)
}

func (*PostgresRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewPostgresRepository(db)
}

func (*PostgresRepositoryManager) Tickets(db dbx.DBTX) tickets.Repository {
	return tickets.NewPostgresRepository(db)
}

func (*PostgresRepositoryManager) RunInTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, db, nil, fn)
}

// migrator is the part of *goose.Provider used here.
type migrator interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
}

var newMigrator = func(db *sql.DB) (migrator, error) {
	return goose.NewProvider(goose.DialectPostgres, db, migrations.Migrations)
}

// RunMigrations applies every pending embedded migration.
func (*PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	p, err := newMigrator(db)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
