package events

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

const columns = `id, owner, owner_role, title, optional, description, organized_by, event_date, event_time,
	location, participants, count, income, ticket_price, quantity, image, likes, comments, category,
	created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	e := &models.Event{}
	var comments []byte
	err := row.Scan(&e.ID, &e.Owner, &e.OwnerRole, &e.Title, &e.Optional, &e.Description, &e.OrganizedBy,
		&e.EventDate, &e.EventTime, &e.Location, &e.Participants, &e.Count, &e.Income, &e.TicketPrice,
		&e.Quantity, &e.Image, &e.Likes, &comments, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := dbx.UnmarshalJSONB(comments, &e.Comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return e, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	if e.Comments == nil {
		e.Comments = []string{}
	}
	comments, err := dbx.MarshalJSONB(e.Comments)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO events (owner, owner_role, title, optional, description, organized_by, event_date, event_time,
		     location, participants, count, income, ticket_price, quantity, image, likes, comments, category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		e.Owner, e.OwnerRole, e.Title, e.Optional, e.Description, e.OrganizedBy, e.EventDate, e.EventTime,
		e.Location, e.Participants, e.Count, e.Income, e.TicketPrice, e.Quantity, e.Image, e.Likes, comments, e.Category,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+columns+` FROM events WHERE id = $1`, id)
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]*models.Event, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+columns+` FROM events ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+columns+` FROM events WHERE category = $1 ORDER BY created_at DESC`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var res []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

// Categories returns the distinct categories stored on events, unfiltered.
func (r *PostgresRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM events ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

// Update overwrites the editable fields of e. Owner, likes and timestamps
// other than updated_at are left alone.
func (r *PostgresRepository) Update(ctx context.Context, e *models.Event) (*models.Event, error) {
	if !validID(e.ID) {
		return nil, common.ErrNotFound
	}

	query :=
		`UPDATE events
		 SET title = $2, optional = $3, description = $4, event_date = $5, event_time = $6, location = $7,
		     participants = $8, count = $9, income = $10, ticket_price = $11, quantity = $12, image = $13,
		     category = $14, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	return r.getOne(ctx, query, e.ID, e.Title, e.Optional, e.Description, e.EventDate, e.EventTime, e.Location,
		e.Participants, e.Count, e.Income, e.TicketPrice, e.Quantity, e.Image, e.Category)
}

func (r *PostgresRepository) SetCategory(ctx context.Context, id, category string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `UPDATE events SET category = $2, updated_at = now() WHERE id = $1`, id, category)
	return affectedOne(res, err)
}

func (r *PostgresRepository) Like(ctx context.Context, id string) (*models.Event, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	query := `UPDATE events SET likes = likes + 1 WHERE id = $1 RETURNING ` + columns
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) error {
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

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}
