// Package memory is a mutex-guarded, process-local implementation of every
// repository. It backs the "memory://" DSN and the service tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/google/uuid"
)

// Store holds all partitions behind a single lock.
type Store struct {
	mu           sync.RWMutex
	seq          uint64
	order        map[string]uint64
	users        map[string]*models.User
	contributors map[string]*models.Contributor
	admins       map[string]*models.Admin
	events       map[string]*models.Event
	tickets      map[string]*models.Ticket
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		order:        make(map[string]uint64),
		users:        make(map[string]*models.User),
		contributors: make(map[string]*models.Contributor),
		admins:       make(map[string]*models.Admin),
		events:       make(map[string]*models.Event),
		tickets:      make(map[string]*models.Ticket),
		now:          time.Now,
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Contributors() *ContributorRepository { return &ContributorRepository{s: s} }

func (s *Store) Admins() *AdminRepository { return &AdminRepository{s: s} }

func (s *Store) Events() *EventRepository { return &EventRepository{s: s} }

func (s *Store) Tickets() *TicketRepository { return &TicketRepository{s: s} }

// assignID keeps a caller-supplied id, otherwise generates one. Must be
// called with s.mu held.
func (s *Store) assignID(id string) string {
	if id == "" {
		id = uuid.NewString()
	}
	s.seq++
	s.order[id] = s.seq
	return id
}

// newestFirst sorts ids by insertion, latest first. Must be called with s.mu held.
func (s *Store) newestFirst(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] > s.order[ids[j]] })
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func applyProfile(acc *models.Account, pf *models.ProfileFields, upd models.ProfileUpdate, at time.Time) {
	if upd.Name != nil {
		acc.Name = *upd.Name
	}
	acc.UpdatedAt = at
	if pf == nil {
		return
	}
	if upd.Photo != nil {
		pf.Photo = *upd.Photo
	}
	if upd.Bio != nil {
		pf.Bio = *upd.Bio
	}
	if upd.Skills != nil {
		pf.Skills = cloneStrings(upd.Skills)
	}
}
