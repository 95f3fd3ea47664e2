package admins

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = "c3d5e7f9-1b2a-4c6d-8e0f-a1b2c3d4e5f6"

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func adminRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(adminID, "Super Admin", "admin@admin.com", "hash", now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+admins\s*\(name,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("Super Admin", "admin@admin.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(adminID, now, now))

	got, err := repo.Create(context.Background(), &models.Admin{Account: models.Account{Name: "Super Admin", Email: "admin@admin.com", PasswordHash: "hash"}})
	require.NoError(t, err)
	assert.Equal(t, adminID, got.ID)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+admins`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "admins_email_key"})

	_, err := repo.Create(context.Background(), &models.Admin{})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestGetByEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at,\s*updated_at\s+FROM\s+admins\s+WHERE\s+email\s*=\s*\$1\s*$`).
		WithArgs("admin@admin.com").
		WillReturnRows(adminRows())

	got, err := repo.GetByEmail(context.Background(), "admin@admin.com")
	require.NoError(t, err)
	assert.Equal(t, "Super Admin", got.Name)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.+FROM\s+admins\s+WHERE\s+id`).
		WithArgs(adminID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), adminID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.GetByID(context.Background(), "1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+admins\s+SET\s+name\s*=\s*\$2`).
		WithArgs(adminID, "Root").
		WillReturnError(errors.New("db err"))

	_, err := repo.UpdateName(context.Background(), adminID, "Root")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
