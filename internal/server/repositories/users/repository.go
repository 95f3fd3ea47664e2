package users

import (
	"context"

	"github.com/Ouarghii/evento/internal/server/models"
)

// Repository stores the user partition. Lookups that match nothing return
// common.ErrNotFound; a taken email on Create returns common.ErrDuplicateEmail.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
}
