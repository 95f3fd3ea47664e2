package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/dbx"
	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/repositories/repomanager"
)

type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *EventService {
	return &EventService{db: db, repomanager: m, logger: l.With("module", "events")}
}

// Create stores e on behalf of actor, who becomes its owner. The category
// is normalized and must then be one of models.Categories.
func (s *EventService) Create(ctx context.Context, actor *models.Identity, e *models.Event) (*models.Event, error) {
	if err := requireRole(actor, models.RoleAdmin, models.RoleContributor); err != nil {
		return nil, err
	}
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	category, err := strictCategory(e.Category)
	if err != nil {
		return nil, err
	}

	e.ID = ""
	e.Category = category
	e.Owner = actor.SubjectID
	e.OwnerRole = actor.Role
	if actor.Profile != nil {
		e.OrganizedBy = actor.Profile.Base().Name
	}
	e.Likes = 0

	created, err := s.repomanager.Events(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	s.logger.Info(ctx, "event created", "event", created.ID, "owner", actor.SubjectID, "role", actor.Role, "category", category)
	return created, nil
}

// List returns all events newest first. A category that does not normalize
// to a known one (or "all") is ignored rather than rejected.
func (s *EventService) List(ctx context.Context, category string) ([]*models.Event, error) {
	filter := ""
	if category != "" && category != "all" {
		if c := models.NormalizeCategory(category); models.IsCategory(c) {
			filter = c
		}
	}
	return s.repomanager.Events(s.db).List(ctx, filter)
}

// ListByCategory is the strict variant of List: an unknown category is an
// error.
func (s *EventService) ListByCategory(ctx context.Context, category string) ([]*models.Event, error) {
	c, err := strictCategory(category)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Events(s.db).List(ctx, c)
}

// Categories returns the distinct categories in use, limited to known ones.
func (s *EventService) Categories(ctx context.Context) ([]string, error) {
	used, err := s.repomanager.Events(s.db).Categories(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(used))
	for _, c := range used {
		if models.IsCategory(strings.TrimSpace(c)) {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.repomanager.Events(s.db).GetByID(ctx, id)
}

func (s *EventService) Like(ctx context.Context, id string) (*models.Event, error) {
	return s.repomanager.Events(s.db).Like(ctx, id)
}

// Update replaces the editable fields of event id with those of upd.
// Contributors may only edit their own events; admins may edit any.
func (s *EventService) Update(ctx context.Context, actor *models.Identity, id string, upd *models.Event) (*models.Event, error) {
	repo := s.repomanager.Events(s.db)
	cur, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	next := *cur
	if t := strings.TrimSpace(upd.Title); t != "" {
		next.Title = t
	}
	next.Optional = upd.Optional
	next.Description = upd.Description
	if !upd.EventDate.IsZero() {
		next.EventDate = upd.EventDate
	}
	next.EventTime = upd.EventTime
	next.Location = upd.Location
	next.Participants = upd.Participants
	next.Count = upd.Count
	next.Income = upd.Income
	next.TicketPrice = upd.TicketPrice
	next.Quantity = upd.Quantity
	if upd.Image != "" {
		next.Image = upd.Image
	}
	if upd.Category != "" {
		if next.Category, err = strictCategory(upd.Category); err != nil {
			return nil, err
		}
	}

	updated, err := repo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "event updated", "event", id, "by", actor.SubjectID)
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, actor *models.Identity, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repomanager.Events(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "event deleted", "event", id, "by", actor.SubjectID)
	return nil
}

// CleanupCategories rewrites stored categories that normalize onto a known
// one but are not spelled exactly like it. It returns how many events
// changed.
func (s *EventService) CleanupCategories(ctx context.Context, actor *models.Identity) (int, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return 0, err
	}

	updated := 0
	err := s.repomanager.RunInTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Events(tx)
		all, err := repo.List(ctx, "")
		if err != nil {
			return err
		}
		for _, e := range all {
			if e.Category == "" {
				continue
			}
			n := models.NormalizeCategory(e.Category)
			if !models.IsCategory(n) || n == e.Category {
				continue
			}
			if err := repo.SetCategory(ctx, e.ID, n); err != nil {
				return fmt.Errorf("event %s: %w", e.ID, err)
			}
			s.logger.Debug(ctx, "category normalized", "event", e.ID, "from", e.Category, "to", n)
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *EventService) editable(ctx context.Context, actor *models.Identity, id string) (*models.Event, error) {
	if err := requireRole(actor, models.RoleAdmin, models.RoleContributor); err != nil {
		return nil, err
	}
	e, err := s.repomanager.Events(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleContributor && e.Owner != actor.SubjectID {
		return nil, fmt.Errorf("%w: event belongs to another account", common.ErrForbidden)
	}
	return e, nil
}

func strictCategory(c string) (string, error) {
	if strings.TrimSpace(c) == "" {
		return "", fmt.Errorf("%w: category is required", common.ErrInvalidCategory)
	}
	n := models.NormalizeCategory(c)
	if !models.IsCategory(n) {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidCategory, n)
	}
	return n, nil
}
