package memory

import (
	"context"
	"sort"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
)

type EventRepository struct{ s *Store }

func cloneEvent(e *models.Event) *models.Event {
	out := *e
	out.Comments = cloneStrings(e.Comments)
	return &out
}

func (r *EventRepository) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.Comments == nil {
		e.Comments = []string{}
	}
	e.ID = r.s.assignID(e.ID)
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	r.s.events[e.ID] = cloneEvent(e)
	return e, nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *EventRepository) List(_ context.Context, category string) ([]*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []string
	for id, e := range r.s.events {
		if category == "" || e.Category == category {
			ids = append(ids, id)
		}
	}
	r.s.newestFirst(ids)

	res := make([]*models.Event, 0, len(ids))
	for _, id := range ids {
		res = append(res, cloneEvent(r.s.events[id]))
	}
	return res, nil
}

func (r *EventRepository) Categories(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{})
	var res []string
	for _, e := range r.s.events {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		res = append(res, e.Category)
	}
	sort.Strings(res)
	return res, nil
}

func (r *EventRepository) Update(_ context.Context, e *models.Event) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.events[e.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cur.Title = e.Title
	cur.Optional = e.Optional
	cur.Description = e.Description
	cur.EventDate = e.EventDate
	cur.EventTime = e.EventTime
	cur.Location = e.Location
	cur.Participants = e.Participants
	cur.Count = e.Count
	cur.Income = e.Income
	cur.TicketPrice = e.TicketPrice
	cur.Quantity = e.Quantity
	cur.Image = e.Image
	cur.Category = e.Category
	cur.UpdatedAt = r.s.now()
	return cloneEvent(cur), nil
}

func (r *EventRepository) SetCategory(_ context.Context, id, category string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok {
		return common.ErrNotFound
	}
	e.Category = category
	e.UpdatedAt = r.s.now()
	return nil
}

func (r *EventRepository) Like(_ context.Context, id string) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	e.Likes++
	return cloneEvent(e), nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.s.events, id)
	for tid, t := range r.s.tickets {
		if t.EventID == id {
			delete(r.s.tickets, tid)
		}
	}
	return nil
}
