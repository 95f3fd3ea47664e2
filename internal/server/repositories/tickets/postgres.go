package tickets

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

const columns = `id, user_id, event_id, details, count, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	t := &models.Ticket{}
	var details []byte
	if err := row.Scan(&t.ID, &t.UserID, &t.EventID, &details, &t.Count, &t.CreatedAt); err != nil {
		return nil, err
	}
	if err := dbx.UnmarshalJSONB(details, &t.Details); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	details, err := dbx.MarshalJSONB(t.Details)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO tickets (user_id, event_id, details, count)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query, t.UserID, t.EventID, details, t.Count).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	t, err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Ticket, error) {
	return r.list(ctx, `SELECT `+columns+` FROM tickets ORDER BY created_at DESC`)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+columns+` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var res []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}
