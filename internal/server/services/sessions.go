package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/auth"
	"github.com/Ouarghii/evento/internal/server/models"
)

// Session is what a successful login hands back to the transport.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   models.Profile
}

// SessionService logs accounts in. Tokens are never stored server-side:
// logout only clears the client's cookie.
type SessionService struct {
	accounts *AccountService
	issuer   *auth.Issuer
	logger   logging.Logger
	now      func() time.Time
}

func NewSessionService(accounts *AccountService, issuer *auth.Issuer, l logging.Logger) *SessionService {
	return &SessionService{
		accounts: accounts,
		issuer:   issuer,
		logger:   l.With("module", "sessions"),
		now:      time.Now,
	}
}

// Login verifies the credentials in role's partition and issues a token.
// Contributors get common.ErrContributorNotApproved until an admin accepts
// them.
func (s *SessionService) Login(ctx context.Context, role models.Role, email, rawPassword string) (*Session, error) {
	p, err := s.accounts.Verify(ctx, role, email, rawPassword)
	if err != nil {
		s.logger.Info(ctx, "login rejected", "role", role, "error", err)
		return nil, err
	}

	if c, ok := p.(*models.Contributor); ok && c.Status != models.StatusAccepted {
		return nil, common.ErrContributorNotApproved
	}

	base := p.Base()
	issuedAt := s.now()
	token, err := s.issuer.Issue(base.ID, role, base.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info(ctx, "login", "role", role, "subject", base.ID)
	return &Session{Token: token, ExpiresAt: issuedAt.Add(s.issuer.TTL()), Profile: p}, nil
}
