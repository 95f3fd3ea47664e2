package contributors

import (
	"context"

	"github.com/Ouarghii/evento/internal/server/models"
)

// Repository stores the contributor partition.
//
// UpdateStatus and DeleteWithStatus only act on a row whose current status
// equals from; otherwise they return common.ErrInvalidTransition, which
// makes the approval transitions safe under concurrent admins.
type Repository interface {
	Create(ctx context.Context, c *models.Contributor) (*models.Contributor, error)
	GetByEmail(ctx context.Context, email string) (*models.Contributor, error)
	GetByID(ctx context.Context, id string) (*models.Contributor, error)
	List(ctx context.Context, status models.ContributorStatus) ([]*models.Contributor, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.Contributor, error)
	UpdateStatus(ctx context.Context, id string, from, to models.ContributorStatus) (*models.Contributor, error)
	DeleteWithStatus(ctx context.Context, id string, from models.ContributorStatus) error
}
