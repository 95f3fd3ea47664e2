// Package grpc exposes the identity operations over gRPC, behind the same
// authorization gate as the REST API.
package grpc

import (
	"context"
	"net"

	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ContributorManager is the part of services.ContributorService the server
// uses.
type ContributorManager interface {
	List(ctx context.Context, actor *models.Identity, status models.ContributorStatus) ([]*models.Contributor, error)
	Accept(ctx context.Context, actor *models.Identity, id string) (*models.Contributor, error)
	Decline(ctx context.Context, actor *models.Identity, id string) (*models.Contributor, error)
}

type GRPCServer struct {
	address      string
	gate         Authorizer
	contributors ContributorManager
	logger       logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, gate Authorizer, cs ContributorManager) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		gate:         gate,
		contributors: cs,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.gateInterceptor))

	srv.RegisterService(&IdentityServiceDesc, s)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
