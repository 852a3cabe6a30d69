// Package server runs the HTTP server, and the gRPC health server when a
// port is configured, until ctx is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shashiranjanraj/catalog/pkg/grpc"
)

// Options configures Run.
type Options struct {
	Addr            string
	Handler         http.Handler
	GRPCPort        string // empty disables gRPC
	Probe           grpc.Probe
	ShutdownTimeout time.Duration
	Log             *slog.Logger

	// ready, when set, receives the bound HTTP address. Tests use it with
	// Addr ":0".
	ready func(addr string)
}

// Run serves until ctx is done, then drains in-flight requests.
func Run(ctx context.Context, opts Options) error {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 15 * time.Second
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           opts.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", opts.Addr, err)
	}
	if opts.ready != nil {
		opts.ready(ln.Addr().String())
	}

	if opts.GRPCPort != "" {
		gs, _, err := grpc.Start(opts.GRPCPort, opts.Probe)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("server: %w", err)
		}
		defer grpc.Stop(gs)
	}

	errCh := make(chan error, 1)
	go func() {
		opts.Log.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	opts.Log.Info("shutting down", "timeout", opts.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
