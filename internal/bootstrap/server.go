package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go-hrms/internal/observability/tracing"
	"go-hrms/internal/shared/audit"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewHTTPServer wraps handler with a server span per request.
func NewHTTPServer(handler http.Handler, cfg ServerConfig) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      tracing.WrapHandler(handler, "go-hrms.http"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Serve listens on server.Addr until ctx is cancelled, then drains
// in-flight requests.
func Serve(ctx context.Context, server *http.Server, auditLogger audit.Logger) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, server, ln, auditLogger)
}

func ServeListener(ctx context.Context, server *http.Server, ln net.Listener, auditLogger audit.Logger) error {
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	logger := zap.L().Named("bootstrap.server")

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	auditLogger.Log(context.Background(), audit.Entry{
		Action:  audit.ActionServerShutdown,
		Message: "Server is shutting down",
		Meta:    map[string]any{"cause": context.Cause(ctx).Error()},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return err
	}
	logger.Info("server exited gracefully")
	return nil
}
