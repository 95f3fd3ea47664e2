package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ouarghii/evento/internal/common"
	gs "github.com/Ouarghii/evento/internal/server/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// sessionToken attaches the current session token to every call. It is
// shared with the IdentityClient that owns it, so SetToken takes effect on
// the next RPC.
type sessionToken struct {
	mu    sync.RWMutex
	value string
}

func (t *sessionToken) set(v string) {
	t.mu.Lock()
	t.value = v
	t.mu.Unlock()
}

func (t *sessionToken) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.value == "" {
		return nil, nil
	}
	return map[string]string{common.AuthorizationHeaderName: common.Bearer(t.value)}, nil
}

// RequireTransportSecurity is false: the CLI talks plaintext to a local
// or tunnelled server.
func (*sessionToken) RequireTransportSecurity() bool { return false }

// IdentityClient calls the identity service over gRPC.
type IdentityClient struct {
	conn   *grpc.ClientConn
	health grpc_health_v1.HealthClient
	token  *sessionToken
}

// NewIdentityClient prepares a connection to target. Nothing is dialled
// until the first call.
func NewIdentityClient(target string, opts ...grpc.DialOption) (*IdentityClient, error) {
	tok := &sessionToken{}
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithPerRPCCredentials(tok),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client %s: %w", target, err)
	}
	return &IdentityClient{
		conn:   conn,
		health: grpc_health_v1.NewHealthClient(conn),
		token:  tok,
	}, nil
}

func (c *IdentityClient) SetToken(token string) { c.token.set(token) }

func (c *IdentityClient) Close() error { return c.conn.Close() }

// Ping succeeds when the server reports the identity service as SERVING.
func (c *IdentityClient) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: gs.ServiceName})
	if err != nil {
		return fromStatus(err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

// WhoAmI returns the identity the server resolves for the current token.
func (c *IdentityClient) WhoAmI(ctx context.Context) (*gs.IdentityReply, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, gs.MethodWhoAmI, &emptypb.Empty{}, out); err != nil {
		return nil, fromStatus(err)
	}
	return gs.IdentityFromStruct(out), nil
}

var codeErrors = map[codes.Code]error{
	codes.Unauthenticated:  ErrUnauthorized,
	codes.PermissionDenied: ErrForbidden,
	codes.NotFound:         ErrNotFound,
	codes.Unavailable:      ErrUnavailable,
	codes.DeadlineExceeded: ErrUnavailable,
}

// fromStatus turns a gRPC status into the package's sentinel errors.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	if sentinel, ok := codeErrors[status.Code(err)]; ok {
		return fmt.Errorf("%w: %s", sentinel, status.Convert(err).Message())
	}
	return fmt.Errorf("rpc error: %w", err)
}
