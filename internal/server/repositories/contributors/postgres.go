package contributors

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

const columns = `id, name, email, password_hash, photo, bio, skills, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContributor(row rowScanner) (*models.Contributor, error) {
	c := &models.Contributor{}
	var skills []byte
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Photo, &c.Bio, &skills, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := dbx.UnmarshalJSONB(skills, &c.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Contributor) (*models.Contributor, error) {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Status == "" {
		c.Status = models.StatusPending
	}
	skills, err := dbx.MarshalJSONB(c.Skills)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO contributors (name, email, password_hash, photo, bio, skills, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		c.Name, c.Email, c.PasswordHash, c.Photo, c.Bio, skills, c.Status).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Contributor, error) {
	query := `SELECT ` + columns + ` FROM contributors WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Contributor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	query := `SELECT ` + columns + ` FROM contributors WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// List returns contributors newest first. An empty status lists all of them.
func (r *PostgresRepository) List(ctx context.Context, status models.ContributorStatus) ([]*models.Contributor, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+columns+` FROM contributors ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+columns+` FROM contributors WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var res []*models.Contributor
	for rows.Next() {
		c, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.Contributor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	var skills *string
	if upd.Skills != nil {
		s, err := dbx.MarshalJSONB(upd.Skills)
		if err != nil {
			return nil, err
		}
		skills = &s
	}

	query :=
		`UPDATE contributors
		 SET name = COALESCE($2, name), photo = COALESCE($3, photo), bio = COALESCE($4, bio),
		     skills = COALESCE($5::jsonb, skills), updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	return r.getOne(ctx, query, id, upd.Name, upd.Photo, upd.Bio, skills)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to models.ContributorStatus) (*models.Contributor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	query :=
		`UPDATE contributors SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING ` + columns

	c, err := r.getOne(ctx, query, id, from, to)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInvalidTransition
	}
	return c, err
}

func (r *PostgresRepository) DeleteWithStatus(ctx context.Context, id string, from models.ContributorStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM contributors WHERE id = $1 AND status = $2`, id, from)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrInvalidTransition
	}
	return nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Contributor, error) {
	c, err := scanContributor(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
