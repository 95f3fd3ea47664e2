// Package authz turns session tokens into resolved identities and decides
// whether an identity may perform an operation.
package authz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/repositories/repomanager"
)

type probe struct {
	role models.Role
	find func(ctx context.Context, id string) (models.Profile, error)
}

// Resolver maps a subject id onto the partition that holds it.
type Resolver struct {
	probes []probe
}

func NewResolver(db *sql.DB, rm repomanager.RepositoryManager) *Resolver {
	// Order matters: the first partition holding the id wins.
	return &Resolver{probes: []probe{
		{role: models.RoleAdmin, find: func(ctx context.Context, id string) (models.Profile, error) {
			a, err := rm.Admins(db).GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return a, nil
		}},
		{role: models.RoleContributor, find: func(ctx context.Context, id string) (models.Profile, error) {
			c, err := rm.Contributors(db).GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return c, nil
		}},
		{role: models.RoleUser, find: func(ctx context.Context, id string) (models.Profile, error) {
			u, err := rm.Users(db).GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return u, nil
		}},
	}}
}

// Resolve probes Admin, then Contributor, then User. It returns nil, nil
// when no partition holds subjectID.
func (r *Resolver) Resolve(ctx context.Context, subjectID string) (*models.Identity, error) {
	if subjectID == "" {
		return nil, nil
	}
	for _, p := range r.probes {
		profile, err := p.find(ctx, subjectID)
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", p.role, err)
		}
		return &models.Identity{SubjectID: subjectID, Role: p.role, Profile: profile}, nil
	}
	return nil, nil
}
