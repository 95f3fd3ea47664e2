package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/cryptox"
	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/notify"
	"github.com/Ouarghii/evento/internal/server/repositories/repomanager"
)

// AccountService is the credential store: it creates accounts in the three
// partitions, verifies passwords and edits profiles.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   notify.Publisher
	logger      logging.Logger
	bcryptCost  int
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, p notify.Publisher, l logging.Logger, bcryptCost int) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		publisher:   p,
		logger:      l.With("module", "accounts"),
		bcryptCost:  bcryptCost,
	}
}

// Register creates an account in the role's partition. The email is
// normalized first and the store's unique index decides races, so of two
// concurrent registrations for one address exactly one succeeds and the
// other gets common.ErrDuplicateEmail. Contributors start pending.
func (s *AccountService) Register(ctx context.Context, role models.Role, name, email, rawPassword string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	email = common.NormalizeEmail(email)
	if name == "" || email == "" || rawPassword == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}

	hash, err := cryptox.HashPassword(rawPassword, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acc := models.Account{Name: name, Email: email, PasswordHash: hash}

	var p models.Profile
	switch role {
	case models.RoleUser:
		p, err = s.repomanager.Users(s.db).Create(ctx, &models.User{Account: acc, ProfileFields: emptyProfile()})
	case models.RoleContributor:
		p, err = s.repomanager.Contributors(s.db).Create(ctx, &models.Contributor{
			Account:       acc,
			ProfileFields: emptyProfile(),
			Status:        models.StatusPending,
		})
	case models.RoleAdmin:
		p, err = s.repomanager.Admins(s.db).Create(ctx, &models.Admin{Account: acc})
	}
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating %s: %w", role, err)
	}

	s.logger.Info(ctx, "account registered", "role", role, "subject", p.Base().ID)
	switch role {
	case models.RoleContributor:
		s.publish(ctx, notify.ContributorRegistered, p, "")
	case models.RoleAdmin:
		s.publish(ctx, notify.AdminCreated, p, actorFrom(ctx))
	}
	return p, nil
}

// Verify checks rawPassword against the stored hash of the account with
// email in role's partition.
func (s *AccountService) Verify(ctx context.Context, role models.Role, email, rawPassword string) (models.Profile, error) {
	p, err := s.findByEmail(ctx, role, common.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	err = cryptox.ComparePassword(p.Base().PasswordHash, rawPassword)
	if errors.Is(err, cryptox.ErrMismatch) {
		return nil, common.ErrBadPassword
	}
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return p, nil
}

// SeedAdmin makes sure the bootstrap admin exists. It is safe to call from
// several processes at once: losing the insert race counts as success.
func (s *AccountService) SeedAdmin(ctx context.Context, name, email, rawPassword string) error {
	email = common.NormalizeEmail(email)
	if email == "" || rawPassword == "" {
		return fmt.Errorf("%w: bootstrap admin email and password are required", common.ErrValidation)
	}

	_, err := s.repomanager.Admins(s.db).GetByEmail(ctx, email)
	if err == nil {
		s.logger.Debug(ctx, "bootstrap admin already present", "email", email)
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	if name == "" {
		name = "admin"
	}
	_, err = s.Register(ctx, models.RoleAdmin, name, email, rawPassword)
	if errors.Is(err, common.ErrDuplicateEmail) {
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "bootstrap admin created", "email", email)
	return nil
}

// UpdateProfile applies upd to the account behind id. Admins only have a
// name to change; the remaining fields are ignored for them.
func (s *AccountService) UpdateProfile(ctx context.Context, id *models.Identity, upd models.ProfileUpdate) (models.Profile, error) {
	if id == nil {
		return nil, common.ErrUnauthenticated
	}
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name must not be empty", common.ErrValidation)
		}
		upd.Name = &trimmed
	}

	var (
		p   models.Profile
		err error
	)
	switch id.Role {
	case models.RoleUser:
		p, err = s.repomanager.Users(s.db).UpdateProfile(ctx, id.SubjectID, upd)
	case models.RoleContributor:
		p, err = s.repomanager.Contributors(s.db).UpdateProfile(ctx, id.SubjectID, upd)
	case models.RoleAdmin:
		if upd.Name == nil {
			return asProfile(s.repomanager.Admins(s.db).GetByID(ctx, id.SubjectID))
		}
		p, err = s.repomanager.Admins(s.db).UpdateName(ctx, id.SubjectID, *upd.Name)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, id.Role)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *AccountService) findByEmail(ctx context.Context, role models.Role, email string) (models.Profile, error) {
	switch role {
	case models.RoleUser:
		return asProfile(s.repomanager.Users(s.db).GetByEmail(ctx, email))
	case models.RoleContributor:
		return asProfile(s.repomanager.Contributors(s.db).GetByEmail(ctx, email))
	case models.RoleAdmin:
		return asProfile(s.repomanager.Admins(s.db).GetByEmail(ctx, email))
	}
	return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
}

func (s *AccountService) publish(ctx context.Context, typ string, p models.Profile, actor string) {
	ev := notify.Event{
		Type:      typ,
		SubjectID: p.Base().ID,
		Email:     p.Base().Email,
		Name:      p.Base().Name,
		ActorID:   actor,
		At:        p.Base().UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn(ctx, "publish failed", "type", typ, "error", err)
	}
}

// asProfile keeps a typed nil pointer from turning into a non-nil interface.
func asProfile[T models.Profile](p T, err error) (models.Profile, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

func emptyProfile() models.ProfileFields {
	return models.ProfileFields{Skills: []string{}}
}

type actorKey struct{}

// WithActor records the subject performing an operation, e.g. the admin
// creating another admin. It only feeds published events.
func WithActor(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, actorKey{}, subjectID)
}

func actorFrom(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
