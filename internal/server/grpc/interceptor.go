package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/authz"
	"github.com/Ouarghii/evento/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Authorizer is the authorization gate as seen by the transport.
type Authorizer interface {
	Authorize(ctx context.Context, token string, allowed ...models.Role) (*models.Identity, error)
}

// policy says who may call a method. Public methods skip the gate.
type policy struct {
	public bool
	roles  []models.Role
}

// policies covers every identity method. A method missing here is refused
// unless its whole service is listed in publicServices.
var policies = map[string]policy{
	MethodWhoAmI:             {roles: models.AllRoles()},
	MethodListContributors:   {roles: []models.Role{models.RoleAdmin}},
	MethodAcceptContributor:  {roles: []models.Role{models.RoleAdmin}},
	MethodDeclineContributor: {roles: []models.Role{models.RoleAdmin}},
}

var publicServices = map[string]bool{
	grpc_health_v1.Health_ServiceDesc.ServiceName: true,
}

func policyFor(fullMethod string) (policy, bool) {
	if p, ok := policies[fullMethod]; ok {
		return p, true
	}
	// "/pkg.Service/Method"
	svc, _, _ := strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")
	if publicServices[svc] {
		return policy{public: true}, true
	}
	return policy{}, false
}

// tokenFromMetadata accepts "authorization: Bearer <jwt>" or a bare
// "token" entry.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(common.AuthorizationHeaderName); len(v) > 0 {
		if tok, ok := common.BearerToken(v[0]); ok {
			return tok
		}
	}
	if v := md.Get(common.TokenCookieName); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (s *GRPCServer) gateInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	p, ok := policyFor(info.FullMethod)
	if !ok {
		s.logger.Warn(ctx, "call to method without policy", "method", info.FullMethod)
		return nil, status.Error(codes.PermissionDenied, "forbidden")
	}
	if p.public {
		return handler(ctx, req)
	}

	id, err := s.gate.Authorize(ctx, tokenFromMetadata(ctx), p.roles...)
	if err != nil {
		return nil, toStatus(err)
	}
	return handler(authz.WithIdentity(ctx, id), req)
}

// toStatus maps service and gate errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthenticated")
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
