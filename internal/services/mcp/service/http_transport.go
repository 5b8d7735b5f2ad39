package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NickTran11/masterbait/internal/platform/timeouts"
)

const healthCheckInterval = 30 * time.Second

// newHTTPServer serves the MCP server over the streamable HTTP transport.
func (s *Server) newHTTPServer(addr string) *http.Server {
	if addr == "" {
		addr = defaultHTTPAddr
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
}

// serveHTTP blocks until ctx ends, then shuts the HTTP server down and
// releases the play session.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	httpServer := s.newHTTPServer(addr)
	listener, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		_ = s.Close()
		return fmt.Errorf("listen on %s: %w", httpServer.Addr, err)
	}
	return s.serveHTTPListener(ctx, httpServer, listener)
}

func (s *Server) serveHTTPListener(ctx context.Context, httpServer *http.Server, listener net.Listener) error {
	s.log.Info("MCP HTTP transport listening", zap.String("addr", listener.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve MCP HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		s.monitorHealth(gctx, healthCheckInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("MCP HTTP shutdown timed out, closing connections", zap.Error(err))
			return httpServer.Close()
		}
		return nil
	})

	err := g.Wait()
	if closeErr := s.Close(); closeErr != nil {
		return errors.Join(err, fmt.Errorf("close MCP server: %w", closeErr))
	}
	return err
}
