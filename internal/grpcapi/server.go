package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/grape-gamble/internal/grape"
	"github.com/xtding233/grape-gamble/internal/metrics"
	"github.com/xtding233/grape-gamble/internal/preset"
	"github.com/xtding233/grape-gamble/internal/service"
)

// Server adapts service.Service to SimulatorServer.
type Server struct {
	svc *service.Service
}

var _ SimulatorServer = (*Server)(nil)

func NewServer(svc *service.Service) *Server {
	return &Server{svc: svc}
}

// NewGRPCServer builds a grpc.Server with the simulator and health services registered.
func NewGRPCServer(svc *service.Service, log *zap.Logger, m *metrics.Metrics) (*grpc.Server, *health.Server) {
	if log == nil {
		log = zap.NewNop()
	}
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(observe(log, m)))
	RegisterSimulatorServer(gs, NewServer(svc))

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs, hs
}

func observe(log *zap.Logger, m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		code := status.Code(err)
		if m != nil {
			m.ObserveRequest("grpc", path.Base(info.FullMethod), code.String())
		}
		log.Debug("grpc request", zap.String("method", info.FullMethod), zap.String("code", code.String()))
		return resp, err
	}
}

func (s *Server) Play(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.Play(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(res)
}

func (s *Server) Simulate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.Simulate(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(res)
}

func (s *Server) Odds(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.Odds(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(res)
}

// toStatus maps service errors onto gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, grape.ErrInvalidConfiguration):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, preset.ErrUnknownPreset):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// encode converts a JSON-tagged result into a Struct via protojson.
func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}
