package memory

import (
	"context"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
)

type TicketRepository struct{ s *Store }

func cloneTicket(t *models.Ticket) *models.Ticket {
	out := *t
	return &out
}

func (r *TicketRepository) Create(_ context.Context, t *models.Ticket) (*models.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t.ID = r.s.assignID(t.ID)
	t.CreatedAt = r.s.now()
	r.s.tickets[t.ID] = cloneTicket(t)
	return t, nil
}

func (r *TicketRepository) GetByID(_ context.Context, id string) (*models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tickets[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneTicket(t), nil
}

func (r *TicketRepository) List(ctx context.Context) ([]*models.Ticket, error) {
	return r.filter(func(*models.Ticket) bool { return true }), nil
}

func (r *TicketRepository) ListByUser(_ context.Context, userID string) ([]*models.Ticket, error) {
	return r.filter(func(t *models.Ticket) bool { return t.UserID == userID }), nil
}

func (r *TicketRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tickets[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.s.tickets, id)
	return nil
}

func (r *TicketRepository) filter(keep func(*models.Ticket) bool) []*models.Ticket {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []string
	for id, t := range r.s.tickets {
		if keep(t) {
			ids = append(ids, id)
		}
	}
	r.s.newestFirst(ids)

	res := make([]*models.Ticket, 0, len(ids))
	for _, id := range ids {
		res = append(res, cloneTicket(r.s.tickets[id]))
	}
	return res
}
