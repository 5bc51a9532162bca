package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
)

// httpWorker is one HTTP server accepting from the listener shared by all
// workers.
type httpWorker struct {
	id              int
	server          *http.Server
	listener        net.Listener
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func newHTTPWorker(id int, handler http.Handler, ln net.Listener, cfg Config, log *logger.Logger) *httpWorker {
	return &httpWorker{
		id: id,
		server: &http.Server{
			Handler:           handler,
			IdleTimeout:       cfg.KeepAlive,
			ReadHeaderTimeout: cfg.RequestTimeout,
		},
		listener:        ln,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          log,
	}
}

// Run implements workers.Worker.
func (w *httpWorker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Serve(w.listener)
	}()

	select {
	case err := <-errCh:
		if ctx.Err() == nil {
			w.logger.Err(err).Int("worker", w.id).Msg("HTTP worker stopped serving")
			return fmt.Errorf("%w: %w", ErrServing, err)
		}
		// another worker closed the shared listener first
		return w.shutdown()
	case <-ctx.Done():
		err := w.shutdown()
		<-errCh
		return err
	}
}

func (w *httpWorker) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	err := w.server.Shutdown(ctx)
	if err != nil && !errors.Is(err, net.ErrClosed) {
		w.logger.Err(err).Int("worker", w.id).Msg("HTTP worker Shutdown")
		return fmt.Errorf("%w: %w", ErrShuttingDown, err)
	}
	w.logger.Debug().Int("worker", w.id).Msg("HTTP worker stopped")
	return nil
}
