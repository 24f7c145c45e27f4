package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/turing/internal/runtime"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownTimeout gives outstanding requests a deadline for completion.
const shutdownTimeout = 5 * time.Second

// ServeOptions configures Serve.
type ServeOptions struct {
	Addr      string
	StepLimit int
}

// NewServerHandler wires the session manager, metrics and HTTP API.
func NewServerHandler(store ports.ProgramStore, opts ServeOptions, logger *slog.Logger) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics("")
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithEngineOptions(
			runtime.WithLogger(logger),
			runtime.WithLifecycleHooks(metrics.Hooks()),
		),
	}
	if opts.StepLimit > 0 {
		sessionOpts = append(sessionOpts, session.WithStepLimit(opts.StepLimit))
	}

	store = middleware.Chain(WithWriteLock(store),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	)
	manager := session.NewManager(store, sessionOpts...)
	return httpAdapter.NewHandler(manager,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithGatherer(reg),
	), nil
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, w io.Writer, store ports.ProgramStore, opts ServeOptions, logger *slog.Logger) error {
	handler, err := NewServerHandler(store, opts, logger)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.Addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(w, "Starting Turing Server on %s", listener.Addr())
		serverErrors <- srv.Serve(listener)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		printSystemMessage(w, "Start shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(w, "Turing Server stopped gracefully")
		return nil
	}
}
