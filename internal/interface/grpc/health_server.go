// Package grpc exposes the standard gRPC health service (grpc.health.v1) for the
// API process. Serving status follows storage reachability.
package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service name. The empty name reports the
// overall server status and always mirrors it.
const ServiceName = "fundacoes.Foundations"

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer wraps the grpc-go health implementation and drives its status
// from periodic storage pings.
type HealthServer struct {
	health *health.Server
	pinger Pinger
}

// NewHealthServer starts in NOT_SERVING until the first successful check.
func NewHealthServer(p Pinger) *HealthServer {
	hs := &HealthServer{health: health.NewServer(), pinger: p}
	hs.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

// Register adds the health service to s.
func (h *HealthServer) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Check pings the store once and publishes the result.
func (h *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		slog.Warn("grpc health: storage ping failed", slog.Any("error", err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.set(status)
	return status
}

// Run checks every interval until ctx is done, then marks the server as shutting down.
func (h *HealthServer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

func (h *HealthServer) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// NewServer returns a gRPC server with the health service registered.
func NewServer(h *HealthServer, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	h.Register(s)
	return s
}
