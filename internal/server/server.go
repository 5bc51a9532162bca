package server

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugin"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/internal/workers"
)

// Host serves the routes of the initialized plugins.
type Host struct {
	cfg     Config
	plugins []*plugin.Guarded
	appInfo service.AppInfoService
	logger  *logger.Logger
}

var _ Server = (*Host)(nil)

func NewHost(cfg Config, plugins []*plugin.Guarded, appInfo service.AppInfoService, logger *logger.Logger) *Host {
	logger.Info().Int("plugins", len(plugins)).Msg("creating webapp host...")
	return &Host{
		cfg:     cfg,
		plugins: plugins,
		appInfo: appInfo,
		logger:  logger,
	}
}

// Run binds the configured address and serves it until ctx is cancelled or
// the process receives SIGTERM, SIGINT or SIGQUIT.
func (h *Host) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	ln, err := net.Listen("tcp", h.cfg.Address())
	if err != nil {
		h.logger.Err(err).Str("address", h.cfg.Address()).Msg("error binding listener")
		return fmt.Errorf("%w %s: %w", ErrListening, h.cfg.Address(), err)
	}

	return h.Serve(ctx, ln)
}

// Serve implements [Server]. Each worker gets its own router; building any
// of them failing aborts before a single request is accepted.
func (h *Host) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()

	group := workers.New()
	for id := 0; id < h.cfg.Workers; id++ {
		router, err := h.NewRouter()
		if err != nil {
			return err
		}
		group.Add(newHTTPWorker(id, router, ln, h.cfg, h.logger))
	}

	h.logger.Info().
		Str("address", ln.Addr().String()).
		Int("workers", group.Len()).
		Msg("Launching HTTP workers")

	if err := group.Run(ctx); err != nil {
		return err
	}

	h.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
