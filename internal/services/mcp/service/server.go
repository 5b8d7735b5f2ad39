package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/NickTran11/masterbait/internal/platform/branding"
	platformgrpc "github.com/NickTran11/masterbait/internal/platform/grpc"
	"github.com/NickTran11/masterbait/internal/platform/timeouts"
	"github.com/NickTran11/masterbait/internal/services/mcp/domain"
	playgrpc "github.com/NickTran11/masterbait/internal/services/play/api/grpc/play"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

const defaultHTTPAddr = "localhost:8081"

// Config configures the MCP server.
type Config struct {
	GRPCAddr  string
	Transport TransportKind
	HTTPAddr  string // Defaults to localhost:8081 for HTTP transport.
	// Locale selects the language of coach messages, e.g. "pt-BR".
	Locale string
	Logger *zap.Logger
}

// Server hosts the MCP server bound to one play session.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
	client    *playgrpc.Client
	log       *zap.Logger
	ctx       domain.Context
	ctxMu     sync.RWMutex
}

// New dials the play service and opens the session the tools act on.
func New(ctx context.Context, cfg Config) (*Server, error) {
	conn, err := dialPlayGRPC(ctx, cfg.GRPCAddr, cfg.Logger)
	if err != nil {
		return nil, err
	}
	server, err := newServer(ctx, conn, cfg.Locale, cfg.Logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return server, nil
}

// newServer creates the play session and binds tool/resource handlers to it.
func newServer(ctx context.Context, conn *grpc.ClientConn, locale string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := playgrpc.NewClient(conn)

	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	resp, err := client.CreateSession(callCtx, &playgrpc.CreateSessionRequest{})
	cancel()
	if err != nil {
		return nil, fmt.Errorf("create play session: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})
	server := &Server{
		mcpServer: mcpServer,
		conn:      conn,
		client:    client,
		log:       logger,
		ctx:       domain.Context{SessionID: resp.SessionID, Locale: strings.TrimSpace(locale)},
	}
	for _, module := range newMCPRegistrationModules(client, server.getContext) {
		module.register(mcpServer)
		logger.Debug("registered MCP module", zap.String("module", module.name), zap.Stringer("kind", module.kind))
	}
	logger.Info("MCP server bound to play session", zap.String("session_id", resp.SessionID))
	return server, nil
}

// completionHandler returns empty completions; no tool argument has a useful
// completion source.
func completionHandler(context.Context, *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Transport == TransportHTTP {
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	}
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP server on transport, then releases the play
// session and the gRPC connection.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close MCP server: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close MCP server: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Close ends the play session and releases the gRPC connection.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	var errs []error
	if sessionID := s.getContext().SessionID; sessionID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.GRPCRequest)
		if _, err := s.client.CloseSession(ctx, &playgrpc.CloseSessionRequest{SessionID: sessionID}); err != nil {
			errs = append(errs, fmt.Errorf("close play session: %w", err))
		}
		cancel()
		s.setContext(domain.Context{})
	}
	if err := s.conn.Close(); err != nil {
		errs = append(errs, err)
	}
	s.conn = nil
	return errors.Join(errs...)
}

func (s *Server) setContext(ctx domain.Context) {
	s.ctxMu.Lock()
	defer s.ctxMu.Unlock()
	s.ctx = ctx
}

// getContext returns the session the tools act on.
func (s *Server) getContext() domain.Context {
	if s == nil {
		return domain.Context{}
	}
	s.ctxMu.RLock()
	defer s.ctxMu.RUnlock()
	return s.ctx
}

// monitorHealth periodically checks the play service. Failures are logged;
// individual tool calls surface their own gRPC errors.
func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthClient := grpc_health_v1.NewHealthClient(s.conn)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
			response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: playgrpc.ServiceName})
			cancel()
			if err != nil {
				s.log.Warn("play service health check failed", zap.Error(err))
			} else if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				s.log.Warn("play service health check status", zap.String("status", response.GetStatus().String()))
			}
		}
	}
}

func dialPlayGRPC(ctx context.Context, addr string, logger *zap.Logger) (*grpc.ClientConn, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("play service address is required")
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, addr, platformgrpc.DialConfig{
		Service: playgrpc.ServiceName,
		Timeout: timeouts.GRPCDial,
		Logger:  logger,
		Options: platformgrpc.DefaultClientDialOptions(playgrpc.CallOptions()...),
	})
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
			return nil, fmt.Errorf("connect to play service at %s: %w", addr, dialErr.Err)
		}
		return nil, fmt.Errorf("play service at %s is not healthy: %w", addr, err)
	}
	return conn, nil
}
