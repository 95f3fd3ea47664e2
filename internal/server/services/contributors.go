package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/notify"
	"github.com/Ouarghii/evento/internal/server/repositories/repomanager"
)

// ContributorService runs the approval state machine:
//
//	pending --accept--> accepted
//	pending --decline-> declined (record removed)
//
// Only admins may move a contributor, and only out of pending.
type ContributorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   notify.Publisher
	logger      logging.Logger
}

func NewContributorService(db *sql.DB, m repomanager.RepositoryManager, p notify.Publisher, l logging.Logger) *ContributorService {
	return &ContributorService{
		db:          db,
		repomanager: m,
		publisher:   p,
		logger:      l.With("module", "contributors"),
	}
}

// List returns contributors with the given status, or all of them when
// status is empty.
func (s *ContributorService) List(ctx context.Context, actor *models.Identity, status models.ContributorStatus) ([]*models.Contributor, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}
	return s.repomanager.Contributors(s.db).List(ctx, status)
}

func (s *ContributorService) Accept(ctx context.Context, actor *models.Identity, id string) (*models.Contributor, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	repo := s.repomanager.Contributors(s.db)
	if _, err := repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	c, err := repo.UpdateStatus(ctx, id, models.StatusPending, models.StatusAccepted)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "contributor accepted", "contributor", id, "admin", actor.SubjectID)
	s.publish(ctx, notify.ContributorAccepted, c, actor.SubjectID)
	return c, nil
}

// Decline removes a pending contributor. The returned value is the record
// as it was just before removal, with Status set to declined.
func (s *ContributorService) Decline(ctx context.Context, actor *models.Identity, id string) (*models.Contributor, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	repo := s.repomanager.Contributors(s.db)
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := repo.DeleteWithStatus(ctx, id, models.StatusPending); err != nil {
		return nil, err
	}
	c.Status = models.StatusDeclined

	s.logger.Info(ctx, "contributor declined", "contributor", id, "admin", actor.SubjectID)
	s.publish(ctx, notify.ContributorDeclined, c, actor.SubjectID)
	return c, nil
}

func (s *ContributorService) publish(ctx context.Context, typ string, c *models.Contributor, actor string) {
	ev := notify.Event{
		Type:      typ,
		SubjectID: c.ID,
		Email:     c.Email,
		Name:      c.Name,
		ActorID:   actor,
		At:        c.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn(ctx, "publish failed", "type", typ, "error", err)
	}
}

// requireRole is the service-side twin of the gate check, for callers that
// reach a service without going through a transport.
func requireRole(actor *models.Identity, roles ...models.Role) error {
	if actor == nil {
		return common.ErrUnauthenticated
	}
	if !actor.Allowed(roles...) {
		return fmt.Errorf("%w: role %s not allowed", common.ErrForbidden, actor.Role)
	}
	return nil
}
