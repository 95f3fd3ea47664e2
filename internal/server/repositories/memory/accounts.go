package memory

import (
	"context"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
)

type UserRepository struct{ s *Store }

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Skills = cloneStrings(u.Skills)
	return &c
}

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}
	user.ID = r.s.assignID(user.ID)
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = cloneUser(user)
	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	applyProfile(&u.Account, &u.ProfileFields, upd, r.s.now())
	return cloneUser(u), nil
}

type ContributorRepository struct{ s *Store }

func cloneContributor(c *models.Contributor) *models.Contributor {
	out := *c
	out.Skills = cloneStrings(c.Skills)
	return &out
}

func (r *ContributorRepository) Create(_ context.Context, c *models.Contributor) (*models.Contributor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.contributors {
		if existing.Email == c.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Status == "" {
		c.Status = models.StatusPending
	}
	c.ID = r.s.assignID(c.ID)
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.contributors[c.ID] = cloneContributor(c)
	return c, nil
}

func (r *ContributorRepository) GetByEmail(_ context.Context, email string) (*models.Contributor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.contributors {
		if c.Email == email {
			return cloneContributor(c), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *ContributorRepository) GetByID(_ context.Context, id string) (*models.Contributor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.contributors[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneContributor(c), nil
}

func (r *ContributorRepository) List(_ context.Context, status models.ContributorStatus) ([]*models.Contributor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []string
	for id, c := range r.s.contributors {
		if status == "" || c.Status == status {
			ids = append(ids, id)
		}
	}
	r.s.newestFirst(ids)

	res := make([]*models.Contributor, 0, len(ids))
	for _, id := range ids {
		res = append(res, cloneContributor(r.s.contributors[id]))
	}
	return res, nil
}

func (r *ContributorRepository) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate) (*models.Contributor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.contributors[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	applyProfile(&c.Account, &c.ProfileFields, upd, r.s.now())
	return cloneContributor(c), nil
}

func (r *ContributorRepository) UpdateStatus(_ context.Context, id string, from, to models.ContributorStatus) (*models.Contributor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.contributors[id]
	if !ok || c.Status != from {
		return nil, common.ErrInvalidTransition
	}
	c.Status = to
	c.UpdatedAt = r.s.now()
	return cloneContributor(c), nil
}

func (r *ContributorRepository) DeleteWithStatus(_ context.Context, id string, from models.ContributorStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.contributors[id]
	if !ok || c.Status != from {
		return common.ErrInvalidTransition
	}
	delete(r.s.contributors, id)
	return nil
}

type AdminRepository struct{ s *Store }

func cloneAdmin(a *models.Admin) *models.Admin {
	out := *a
	return &out
}

func (r *AdminRepository) Create(_ context.Context, a *models.Admin) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.admins {
		if existing.Email == a.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	a.ID = r.s.assignID(a.ID)
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.admins[a.ID] = cloneAdmin(a)
	return a, nil
}

func (r *AdminRepository) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.admins {
		if a.Email == email {
			return cloneAdmin(a), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *AdminRepository) GetByID(_ context.Context, id string) (*models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.admins[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneAdmin(a), nil
}

func (r *AdminRepository) UpdateName(_ context.Context, id, name string) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.admins[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	applyProfile(&a.Account, nil, models.ProfileUpdate{Name: &name}, r.s.now())
	return cloneAdmin(a), nil
}
