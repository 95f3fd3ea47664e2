package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_CreateConcurrentSameEmail(t *testing.T) {
	s := NewStore()
	repo := s.Users()

	const n = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), &models.User{Account: models.Account{Email: "a@x.com"}})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, common.ErrDuplicateEmail):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dups)
}

func TestUsers_EmailUniquePerPartitionOnly(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Users().Create(ctx, &models.User{Account: models.Account{Email: "same@x.com"}})
	require.NoError(t, err)
	_, err = s.Contributors().Create(ctx, &models.Contributor{Account: models.Account{Email: "same@x.com"}})
	require.NoError(t, err)
	_, err = s.Admins().Create(ctx, &models.Admin{Account: models.Account{Email: "same@x.com"}})
	require.NoError(t, err)
}

func TestUsers_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u, err := s.Users().Create(ctx, &models.User{Account: models.Account{Email: "a@x.com"}, ProfileFields: models.ProfileFields{Skills: []string{"go"}}})
	require.NoError(t, err)

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Skills[0] = "mutated"
	got.Name = "mutated"

	again, err := s.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Skills)
	assert.Empty(t, again.Name)
}

func TestUsers_UpdateProfile(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u, err := s.Users().Create(ctx, &models.User{Account: models.Account{Name: "Alice", Email: "a@x.com"}})
	require.NoError(t, err)

	bio := "hello"
	got, err := s.Users().UpdateProfile(ctx, u.ID, models.ProfileUpdate{Bio: &bio, Skills: []string{"sql"}})
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "hello", got.Bio)
	assert.Equal(t, []string{"sql"}, got.Skills)

	_, err = s.Users().UpdateProfile(ctx, "missing", models.ProfileUpdate{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestContributors_StatusTransitions(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Contributors()

	c, err := repo.Create(ctx, &models.Contributor{Account: models.Account{Email: "carol@x.com"}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, c.Status)

	pending, err := repo.List(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	got, err := repo.UpdateStatus(ctx, c.ID, models.StatusPending, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got.Status)

	_, err = repo.UpdateStatus(ctx, c.ID, models.StatusPending, models.StatusAccepted)
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
	assert.ErrorIs(t, repo.DeleteWithStatus(ctx, c.ID, models.StatusPending), common.ErrInvalidTransition)

	d, err := repo.Create(ctx, &models.Contributor{Account: models.Account{Email: "dave@x.com"}})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteWithStatus(ctx, d.ID, models.StatusPending))
	_, err = repo.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEvents_ListNewestFirstAndCategories(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Events()

	first, err := repo.Create(ctx, &models.Event{Title: "first", Category: "Community"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.Event{Title: "second", Category: "Engineering & Business"})
	require.NoError(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	community, err := repo.List(ctx, "Community")
	require.NoError(t, err)
	require.Len(t, community, 1)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Community", "Engineering & Business"}, cats)

	liked, err := repo.Like(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
}

func TestEvents_DeleteCascadesTickets(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	e, err := s.Events().Create(ctx, &models.Event{Category: "Community"})
	require.NoError(t, err)
	tk, err := s.Tickets().Create(ctx, &models.Ticket{EventID: e.ID, UserID: "u1", Count: 1})
	require.NoError(t, err)

	require.NoError(t, s.Events().Delete(ctx, e.ID))
	_, err = s.Tickets().GetByID(ctx, tk.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, s.Events().Delete(ctx, e.ID), common.ErrNotFound)
}

func TestTickets_ListByUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Tickets()

	_, err := repo.Create(ctx, &models.Ticket{UserID: "u1", EventID: "e1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Ticket{UserID: "u2", EventID: "e1"})
	require.NoError(t, err)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
