package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/demoapi/internal/config"
	"git.home.luguber.info/inful/demoapi/internal/hoststats"
	"git.home.luguber.info/inful/demoapi/internal/metrics"
	"git.home.luguber.info/inful/demoapi/internal/sampler"
	"git.home.luguber.info/inful/demoapi/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command: the HTTP service plus the
// background host-stats sampler.
type ServeCmd struct {
	Host string `help:"Override configured listen host"`
	Port int    `help:"Override configured listen port"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s.Host != "" {
		cfg.Server.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}

	logger := BuildLogger(cfg, root.Verbose)
	slog.SetDefault(logger)

	reg := metrics.NewRegistry()
	app, err := metrics.NewApp(reg)
	if err != nil {
		return fmt.Errorf("declare metrics: %w", err)
	}

	host := &hoststats.HostProvider{DiskPath: cfg.Sampler.DiskPath}
	resources := hoststats.SimulatedConnections{
		Min: cfg.Sampler.ConnectionsMin,
		Max: cfg.Sampler.ConnectionsMax,
	}
	smp, err := sampler.New(app, host, resources, cfg.Sampler.Interval.Std())
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	srv := httpserver.New(cfg, app, logger, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	smp.Start(ctx)

	logger.Info("Service started",
		slog.String("addr", cfg.Server.Addr()),
		slog.Duration("sample_interval", cfg.Sampler.Interval.Std()))

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer stopCancel()

	var errs []error
	if err := srv.Stop(stopCtx); err != nil {
		errs = append(errs, err)
	}
	if err := smp.Stop(stopCtx); err != nil {
		errs = append(errs, fmt.Errorf("sampler shutdown: %w", err))
	}
	return errors.Join(errs...)
}
