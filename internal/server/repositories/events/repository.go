package events

import (
	"context"

	"github.com/Ouarghii/evento/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// List returns events newest first, restricted to category when it is not empty.
	List(ctx context.Context, category string) ([]*models.Event, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, e *models.Event) (*models.Event, error)
	SetCategory(ctx context.Context, id, category string) error
	Like(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}
