package admins

import (
	"context"

	"github.com/Ouarghii/evento/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Admin) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	UpdateName(ctx context.Context, id, name string) (*models.Admin, error)
}
