package grpc

import (
	"context"

	"github.com/Ouarghii/evento/internal/server/authz"
	"github.com/Ouarghii/evento/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func callerFrom(ctx context.Context) (*models.Identity, error) {
	id, ok := authz.IdentityFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	id, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	reply := &IdentityReply{SubjectID: id.SubjectID, Role: string(id.Role)}
	if id.Profile != nil {
		reply.Name = id.Profile.Base().Name
		reply.Email = id.Profile.Base().Email
	}
	return reply.Struct(), nil
}

// ListContributors takes the status filter; an empty value lists everyone.
func (s *GRPCServer) ListContributors(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	id, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.contributors.List(ctx, id, models.ContributorStatus(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(list))}
	for _, c := range list {
		out.Values = append(out.Values, structpb.NewStructValue(contributorReply(c).Struct()))
	}
	return out, nil
}

func (s *GRPCServer) AcceptContributor(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.contributors.Accept(ctx, id, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "contributor accepted", "contributor", req.GetValue())
	return contributorReply(c).Struct(), nil
}

func (s *GRPCServer) DeclineContributor(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.contributors.Decline(ctx, id, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "contributor declined", "contributor", req.GetValue())
	return contributorReply(c).Struct(), nil
}

func contributorReply(c *models.Contributor) *ContributorReply {
	return &ContributorReply{ID: c.ID, Name: c.Name, Email: c.Email, Status: string(c.Status)}
}
