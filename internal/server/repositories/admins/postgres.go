package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/dbx"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	query :=
		`INSERT INTO admins (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Email, a.PasswordHash).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at, updated_at FROM admins
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	query :=
		`SELECT id, name, email, password_hash, created_at, updated_at FROM admins
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) (*models.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	query :=
		`UPDATE admins SET name = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, email, password_hash, created_at, updated_at
		 `
	return r.getOne(ctx, query, id, name)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Admin, error) {
	a := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
