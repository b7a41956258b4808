package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/termfolio/internal/config"
	httpAdapter "github.com/aretw0/termfolio/pkg/adapters/http"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/observability"
	"github.com/aretw0/termfolio/pkg/session"
)

// ShutdownTimeout bounds how long outstanding requests may take once shutdown starts.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Config config.Config
	Debug  bool
	// Listener replaces the TCP listener on Config.Port.
	Listener net.Listener
	// Ready, when set, receives the bound address once the server accepts connections.
	Ready func(addr string)
}

// Serve runs the HTTP API until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, catalog *content.Catalog, opts ServeOptions) error {
	logger, logCloser, err := NewLogger(opts.Config, opts.Debug, false)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	backend, err := OpenBackend(ctx, opts.Config, StoreMemory, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	managerOpts := []session.Option{session.WithLogger(logger)}
	if backend.Locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(backend.Locker))
	}
	sessions := session.NewManager(backend.Store, managerOpts...)

	metrics := observability.NewMetrics()
	handler := httpAdapter.NewHandler(catalog, sessions,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(metrics),
		httpAdapter.WithHooks(observability.Hooks(logger, metrics)),
	)

	ln := opts.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", ":"+strconv.Itoa(opts.Config.Port))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with ctx instead of holding Shutdown until the timeout.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting termfolio server", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Termfolio server stopped gracefully")
		return nil
	}
}
