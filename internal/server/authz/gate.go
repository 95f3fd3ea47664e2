package authz

import (
	"context"
	"fmt"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/auth"
	"github.com/Ouarghii/evento/internal/server/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, subjectID string) (*models.Identity, error)
}

// Gate is the single authorization check for every privileged operation.
type Gate struct {
	tokens   TokenValidator
	resolver IdentityResolver
	logger   logging.Logger
	tracer   trace.Tracer
}

func NewGate(tokens TokenValidator, resolver IdentityResolver, logger logging.Logger) *Gate {
	return &Gate{
		tokens:   tokens,
		resolver: resolver,
		logger:   logger.With("module", "authz"),
		tracer:   otel.Tracer("github.com/Ouarghii/evento/internal/server/authz"),
	}
}

// Authorize validates token, resolves its subject and checks the resolved
// role against allowed. An empty allow-list admits nobody.
//
// Bad, expired or orphaned tokens give common.ErrUnauthenticated; a role
// outside allowed gives common.ErrForbidden. Store failures are returned
// wrapped and match neither.
func (g *Gate) Authorize(ctx context.Context, token string, allowed ...models.Role) (*models.Identity, error) {
	ctx, span := g.tracer.Start(ctx, "authz.Authorize")
	defer span.End()

	id, err := g.authorize(ctx, token, allowed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("evento.role", string(id.Role)))
	return id, nil
}

func (g *Gate) authorize(ctx context.Context, token string, allowed []models.Role) (*models.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", common.ErrUnauthenticated)
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	id, err := g.resolver.Resolve(ctx, claims.SubjectID())
	if err != nil {
		g.logger.Error(ctx, "identity resolution failed", "subject", claims.SubjectID(), "error", err)
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if id == nil {
		return nil, fmt.Errorf("%w: subject no longer exists", common.ErrUnauthenticated)
	}

	if claims.Role != id.Role {
		g.logger.Warn(ctx, "token role differs from resolved role",
			"subject", id.SubjectID, "claimed", claims.Role, "resolved", id.Role)
	}

	if !id.Allowed(allowed...) {
		return nil, fmt.Errorf("%w: role %s not allowed", common.ErrForbidden, id.Role)
	}
	return id, nil
}
