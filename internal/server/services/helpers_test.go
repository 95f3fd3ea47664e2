package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/auth"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/notify"
	"github.com/Ouarghii/evento/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	rm           *repomanager.MemoryRepositoryManager
	pub          *recordingPublisher
	accounts     *AccountService
	sessions     *SessionService
	contributors *ContributorService
	events       *EventService
	tickets      *TicketService
	issuer       *auth.Issuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	pub := &recordingPublisher{}
	log := logging.Nop{}

	iss, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	acc := NewAccountService(nil, rm, pub, log, bcrypt.MinCost)
	return &fixture{
		rm:           rm,
		pub:          pub,
		accounts:     acc,
		sessions:     NewSessionService(acc, iss, log),
		contributors: NewContributorService(nil, rm, pub, log),
		events:       NewEventService(nil, rm, log),
		tickets:      NewTicketService(nil, rm, log),
		issuer:       iss,
	}
}

// register creates an account and returns the identity the gate would
// resolve for it.
func (f *fixture) register(t *testing.T, role models.Role, name, email string) *models.Identity {
	t.Helper()
	p, err := f.accounts.Register(context.Background(), role, name, email, "pw-"+name)
	require.NoError(t, err)
	return &models.Identity{SubjectID: p.Base().ID, Role: role, Profile: p}
}
