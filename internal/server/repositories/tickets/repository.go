package tickets

import (
	"context"

	"github.com/Ouarghii/evento/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Ticket) (*models.Ticket, error)
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	List(ctx context.Context) ([]*models.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error)
	Delete(ctx context.Context, id string) error
}
