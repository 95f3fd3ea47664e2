package services

import (
	"context"
	"testing"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, models.RoleAdmin, "root", "root@x.com")
	alice := f.register(t, models.RoleUser, "alice", "alice@x.com")
	bob := f.register(t, models.RoleUser, "bob", "bob@x.com")
	carol := f.register(t, models.RoleContributor, "carol", "carol@x.com")

	e, err := f.events.Create(ctx, admin, &models.Event{Title: "conf", Category: "Community"})
	require.NoError(t, err)

	tk, err := f.tickets.Create(ctx, alice, &models.Ticket{
		UserID:  bob.SubjectID,
		EventID: e.ID,
		Details: models.TicketDetails{Name: "Alice", EventName: "conf"},
	})
	require.NoError(t, err)
	assert.Equal(t, alice.SubjectID, tk.UserID, "owner comes from the identity")
	assert.Equal(t, 1, tk.Count)

	t.Run("create needs an existing event", func(t *testing.T) {
		_, err := f.tickets.Create(ctx, alice, &models.Ticket{EventID: "missing"})
		assert.ErrorIs(t, err, common.ErrNotFound)

		_, err = f.tickets.Create(ctx, alice, &models.Ticket{})
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("list is for staff", func(t *testing.T) {
		_, err := f.tickets.List(ctx, alice)
		assert.ErrorIs(t, err, common.ErrForbidden)

		all, err := f.tickets.List(ctx, carol)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("per user listing is self or admin", func(t *testing.T) {
		mine, err := f.tickets.ListForUser(ctx, alice, alice.SubjectID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		_, err = f.tickets.ListForUser(ctx, bob, alice.SubjectID)
		assert.ErrorIs(t, err, common.ErrForbidden)

		theirs, err := f.tickets.ListForUser(ctx, admin, alice.SubjectID)
		require.NoError(t, err)
		assert.Len(t, theirs, 1)
	})

	t.Run("delete is owner or admin", func(t *testing.T) {
		assert.ErrorIs(t, f.tickets.Delete(ctx, bob, tk.ID), common.ErrForbidden)
		require.NoError(t, f.tickets.Delete(ctx, alice, tk.ID))
		assert.ErrorIs(t, f.tickets.Delete(ctx, admin, tk.ID), common.ErrNotFound)
	})
}
