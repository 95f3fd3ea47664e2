package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/repositories/repomanager"
)

type TicketService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTicketService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *TicketService {
	return &TicketService{db: db, repomanager: m, logger: l.With("module", "tickets")}
}

// Create books a ticket for actor. The owner always comes from the
// identity, never from the request body.
func (s *TicketService) Create(ctx context.Context, actor *models.Identity, t *models.Ticket) (*models.Ticket, error) {
	if err := requireRole(actor, models.AllRoles()...); err != nil {
		return nil, err
	}
	if t.EventID == "" {
		return nil, fmt.Errorf("%w: eventid is required", common.ErrValidation)
	}
	if _, err := s.repomanager.Events(s.db).GetByID(ctx, t.EventID); err != nil {
		return nil, fmt.Errorf("event %s: %w", t.EventID, err)
	}
	if t.Count <= 0 {
		t.Count = 1
	}

	t.ID = ""
	t.UserID = actor.SubjectID
	created, err := s.repomanager.Tickets(s.db).Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("error creating ticket: %w", err)
	}
	s.logger.Info(ctx, "ticket created", "ticket", created.ID, "event", t.EventID, "user", actor.SubjectID)
	return created, nil
}

func (s *TicketService) List(ctx context.Context, actor *models.Identity) ([]*models.Ticket, error) {
	if err := requireRole(actor, models.RoleAdmin, models.RoleContributor); err != nil {
		return nil, err
	}
	return s.repomanager.Tickets(s.db).List(ctx)
}

// ListForUser returns userID's tickets. Callers may read their own; admins
// may read anyone's.
func (s *TicketService) ListForUser(ctx context.Context, actor *models.Identity, userID string) ([]*models.Ticket, error) {
	if err := requireRole(actor, models.AllRoles()...); err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && actor.SubjectID != userID {
		return nil, fmt.Errorf("%w: tickets of another account", common.ErrForbidden)
	}
	return s.repomanager.Tickets(s.db).ListByUser(ctx, userID)
}

// Delete removes a ticket owned by actor, or any ticket when actor is an
// admin.
func (s *TicketService) Delete(ctx context.Context, actor *models.Identity, id string) error {
	if err := requireRole(actor, models.AllRoles()...); err != nil {
		return err
	}
	repo := s.repomanager.Tickets(s.db)
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && t.UserID != actor.SubjectID {
		return fmt.Errorf("%w: ticket belongs to another account", common.ErrForbidden)
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "ticket deleted", "ticket", id, "by", actor.SubjectID)
	return nil
}
