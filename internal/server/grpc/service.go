package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the identity service.
const ServiceName = "evento.identity.v1.Identity"

// Full method names, as seen by interceptors.
const (
	MethodWhoAmI             = "/" + ServiceName + "/WhoAmI"
	MethodListContributors   = "/" + ServiceName + "/ListContributors"
	MethodAcceptContributor  = "/" + ServiceName + "/AcceptContributor"
	MethodDeclineContributor = "/" + ServiceName + "/DeclineContributor"
)

// IdentityServer is implemented by GRPCServer. Messages are protobuf
// well-known types: the status filter and contributor ids travel as
// StringValue, replies as Struct or ListValue.
type IdentityServer interface {
	WhoAmI(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListContributors(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	AcceptContributor(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	DeclineContributor(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// unary adapts a typed method to grpc.MethodDesc's handler shape.
func unary[Req any, Resp any](fullMethod string, call func(IdentityServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IdentityServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IdentityServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var IdentityServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "WhoAmI", Handler: unary(MethodWhoAmI, IdentityServer.WhoAmI)},
		{MethodName: "ListContributors", Handler: unary(MethodListContributors, IdentityServer.ListContributors)},
		{MethodName: "AcceptContributor", Handler: unary(MethodAcceptContributor, IdentityServer.AcceptContributor)},
		{MethodName: "DeclineContributor", Handler: unary(MethodDeclineContributor, IdentityServer.DeclineContributor)},
	},
	Streams: []grpc.StreamDesc{},
}
