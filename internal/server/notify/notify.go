// Package notify publishes account lifecycle events. Delivery (mail, push)
// is somebody else's job; this side only emits.
package notify

import (
	"context"
	"time"

	"github.com/Ouarghii/evento/internal/logging"
)

const (
	ContributorRegistered = "contributor.registered"
	ContributorAccepted   = "contributor.accepted"
	ContributorDeclined   = "contributor.declined"
	AdminCreated          = "admin.created"
)

type Event struct {
	Type      string    `json:"type"`
	SubjectID string    `json:"subjectId"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// LogPublisher writes events to the logger. Used when no broker is configured.
type LogPublisher struct {
	logger logging.Logger
}

func NewLogPublisher(l logging.Logger) *LogPublisher {
	return &LogPublisher{logger: l.With("module", "notify")}
}

func (p *LogPublisher) Publish(ctx context.Context, ev Event) error {
	p.logger.Info(ctx, "event published", "type", ev.Type, "subject", ev.SubjectID, "email", ev.Email)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
