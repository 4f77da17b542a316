package server

import (
	"chat-relay/errors"
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const readHeaderTimeout = 10 * time.Second

// ServerWorker serves the HTTP API until its context is cancelled.
type ServerWorker struct {
	log             *slog.Logger
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
	onShutdown      []func()
}

// NewServerWorker runs each onShutdown hook after the listener stopped
// accepting requests. Hijacked connections must be closed by a hook.
func NewServerWorker(log *slog.Logger, addr string, handler http.Handler, shutdownTimeout time.Duration, onShutdown ...func()) *ServerWorker {
	return &ServerWorker{
		log:             log,
		addr:            addr,
		handler:         handler,
		shutdownTimeout: shutdownTimeout,
		onShutdown:      onShutdown,
	}
}

func (s *ServerWorker) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve accepts on listener and returns once the server is drained.
func (s *ServerWorker) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", listener.Addr().String())
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	for _, hook := range s.onShutdown {
		hook()
	}
	if err != nil {
		s.log.Warn("HTTP server shutdown incomplete", "error", err)
		return err
	}
	s.log.Info("HTTP server stopped")
	return nil
}
