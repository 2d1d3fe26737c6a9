// Package httpapi exposes the API surface over HTTP. Every query and
// mutation is served at POST /api/{operation} with a JSON object of its
// arguments and answers {"data": ...} or {"error": ...}.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Config controls the HTTP server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Run serves handler until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, log zerolog.Logger, cfg Config, handler http.Handler) error {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	return Serve(ctx, log, ln, cfg.ShutdownTimeout, handler)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, log zerolog.Logger, ln net.Listener, shutdownTimeout time.Duration, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info().Msg("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
