// Package grpc exposes the gRPC side of go-cred-guard: the standard
// grpc.health.v1 service and the interceptors shared by every gRPC method.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/service"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported for the credential API.
// The empty name reports the overall server status.
const ServiceName = "gocredguard.CredentialService"

const traceIDKey = "x-trace-id"

// Pinger reports whether the backing storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It owns the health server and the unary interceptor chain. A handler
// instance is created once at startup and shared by the gRPC server.
type Handler struct {
	services *service.Services
	health   *health.Server
	traceIDs *utils.TraceIDGenerator
	logger   *logger.Logger
}

// NewHandler constructs a [Handler]. Every service starts as NOT_SERVING
// until [Handler.CheckStorage] succeeds.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		traceIDs: utils.NewTraceIDGenerator(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health service to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// ServerOptions returns the interceptors every gRPC server built for this
// handler must carry.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging),
	}
}

// CheckStorage pings storage and flips the reported status accordingly.
func (h *Handler) CheckStorage(ctx context.Context, storage Pinger) error {
	if err := storage.Ping(ctx); err != nil {
		h.logger.Err(err).Msg("storage is unreachable, reporting NOT_SERVING")
		h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}

	h.setStatus(healthpb.HealthCheckResponse_SERVING)
	return nil
}

// Shutdown marks every service NOT_SERVING and rejects further watches.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// withTraceID attaches a request-scoped logger carrying trace_id. An
// incoming x-trace-id metadata value is reused.
func (h *Handler) withTraceID(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	var traceID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 {
			traceID = values[0]
		}
	}
	if traceID == "" {
		traceID = h.traceIDs.Generate()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})

	return next(l.WithContext(ctx), req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)

	log := logger.FromContext(ctx)
	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}
	event.Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("gRPC request")

	return resp, err
}
