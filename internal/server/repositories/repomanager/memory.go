package repomanager

import (
	"context"
	"database/sql"

	"github.com/Ouarghii/evento/internal/dbx"
	"github.com/Ouarghii/evento/internal/server/repositories/admins"
	"github.com/Ouarghii/evento/internal/server/repositories/contributors"
	"github.com/Ouarghii/evento/internal/server/repositories/events"
	"github.com/Ouarghii/evento/internal/server/repositories/memory"
	"github.com/Ouarghii/evento/internal/server/repositories/tickets"
	"github.com/Ouarghii/evento/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one memory.Store and
// ignores the DBTX arguments.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

// Store exposes the backing store, mainly for tests that seed it directly.
func (m *MemoryRepositoryManager) Store() *memory.Store { return m.store }

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// RunInTx calls fn directly; each memory repository call is atomic on its own.
func (m *MemoryRepositoryManager) RunInTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.store.Users() }

func (m *MemoryRepositoryManager) Contributors(dbx.DBTX) contributors.Repository {
	return m.store.Contributors()
}

func (m *MemoryRepositoryManager) Admins(dbx.DBTX) admins.Repository { return m.store.Admins() }

func (m *MemoryRepositoryManager) Events(dbx.DBTX) events.Repository { return m.store.Events() }

func (m *MemoryRepositoryManager) Tickets(dbx.DBTX) tickets.Repository { return m.store.Tickets() }
