// Package grpcapi exposes the game operations over gRPC. Messages are
// google.protobuf.Struct values carrying the same fields as the HTTP JSON API,
// so no generated stubs are needed.
package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "grapegamble.v1.Simulator"

// Full method names for clients using conn.Invoke.
const (
	PlayMethod     = "/" + ServiceName + "/Play"
	SimulateMethod = "/" + ServiceName + "/Simulate"
	OddsMethod     = "/" + ServiceName + "/Odds"
)

// SimulatorServer is the server API for the Simulator service.
type SimulatorServer interface {
	Play(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Odds(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSimulatorServer registers srv on s.
func RegisterSimulatorServer(s grpc.ServiceRegistrar, srv SimulatorServer) {
	s.RegisterService(&simulatorServiceDesc, srv)
}

type unaryCall func(SimulatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SimulatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SimulatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var simulatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Play", Handler: unaryHandler(PlayMethod, SimulatorServer.Play)},
		{MethodName: "Simulate", Handler: unaryHandler(SimulateMethod, SimulatorServer.Simulate)},
		{MethodName: "Odds", Handler: unaryHandler(OddsMethod, SimulatorServer.Odds)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "grapegamble/v1/simulator.proto",
}
