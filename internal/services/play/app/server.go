package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/NickTran11/masterbait/internal/platform/schedule"
	playgrpc "github.com/NickTran11/masterbait/internal/services/play/api/grpc/play"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/host"
)

// Config wires the play server.
type Config struct {
	// Addr is the listen address. It overrides Port when set.
	Addr                string
	Port                int
	Catalog             *catalog.Catalog
	Logger              *zap.Logger
	Scheduler           schedule.Scheduler
	Seed                int64
	CountdownInterval   time.Duration
	DistractionInterval time.Duration
}

// Server hosts the play service.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	sessions   *host.Manager
	log        *zap.Logger
}

// New creates a configured play server listening on cfg's address.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cfg.Catalog = cat
	}
	addr := cfg.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}

	sessions, err := host.NewManager(host.Config{
		Catalog:             cfg.Catalog,
		Scheduler:           cfg.Scheduler,
		Logger:              cfg.Logger.Named("host"),
		Seed:                cfg.Seed,
		CountdownInterval:   cfg.CountdownInterval,
		DistractionInterval: cfg.DistractionInterval,
	})
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(LoggingInterceptor(cfg.Logger.Named("grpc"))),
	)
	playgrpc.RegisterPlayServiceServer(grpcServer, playgrpc.NewService(sessions, cfg.Logger.Named("play")))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(playgrpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		sessions:   sessions,
		log:        cfg.Logger,
	}, nil
}

// Addr returns the listener address for the play server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Sessions returns the session host.
func (s *Server) Sessions() *host.Manager { return s.sessions }

// Run creates and serves a play server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve starts the play server and blocks until it stops or the context ends.
// Every session is closed on the way out so no level timers outlive it.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.sessions.CloseAll()

	s.log.Info("play server listening", zap.String("addr", s.Addr()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		// Closing sessions ends Watch streams, which GracefulStop waits on.
		s.sessions.CloseAll()
		s.grpcServer.GracefulStop()
		err := <-serveErr
		return handleErr(err)
	case err := <-serveErr:
		return handleErr(err)
	}
}
