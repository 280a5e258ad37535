// Package sampler runs the periodic background task that refreshes host
// resource gauges (CPU, memory, disk) and the simulated external resource
// count.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	derrors "git.home.luguber.info/inful/demoapi/internal/errors"
	"git.home.luguber.info/inful/demoapi/internal/hoststats"
	"git.home.luguber.info/inful/demoapi/internal/logfields"
	"git.home.luguber.info/inful/demoapi/internal/metrics"
)

// Sampler wraps a gocron scheduler driving periodic host-stats collection.
// A failed sample is logged and the loop continues on the next tick; only
// Stop (or process exit) ends the task.
type Sampler struct {
	scheduler gocron.Scheduler
	app       *metrics.App
	host      hoststats.Provider
	resources hoststats.ResourceCounter
	interval  time.Duration
}

// New creates a sampler writing into app's gauges every interval.
func New(app *metrics.App, host hoststats.Provider, resources hoststats.ResourceCounter, interval time.Duration) (*Sampler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	sampler := &Sampler{
		scheduler: s,
		app:       app,
		host:      host,
		resources: resources,
		interval:  interval,
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sampler.tick),
		gocron.WithName("system-sampler"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampling job: %w", err)
	}
	return sampler, nil
}

// Start begins the periodic sampling.
func (s *Sampler) Start(ctx context.Context) {
	slog.Info("Starting system sampler", slog.Duration("interval", s.interval))
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Sampler) Stop(ctx context.Context) error {
	slog.Info("Stopping system sampler")
	return s.scheduler.Shutdown()
}

// tick is the gocron entry point. Failures never propagate to the
// scheduler, so one bad read cannot terminate the task.
func (s *Sampler) tick() {
	if err := s.SampleOnce(context.Background()); err != nil {
		slog.Warn("System sample failed", logfields.Error(err))
	}
}

// SampleOnce reads every source once and writes each successful reading
// into its gauge. Partial failures do not block the remaining sources;
// the joined failures are returned for logging.
func (s *Sampler) SampleOnce(ctx context.Context) error {
	var errs []error

	if v, err := s.host.CPUPercent(ctx); err != nil {
		errs = append(errs, derrors.SamplingError(err, "sampling cpu utilization"))
	} else {
		s.app.CPUUsage().Set(v)
	}

	if v, err := s.host.MemoryPercent(ctx); err != nil {
		errs = append(errs, derrors.SamplingError(err, "sampling memory utilization"))
	} else {
		s.app.MemoryUsage().Set(v)
	}

	if v, err := s.host.DiskPercent(ctx); err != nil {
		errs = append(errs, derrors.SamplingError(err, "sampling disk utilization"))
	} else {
		s.app.DiskUsage().Set(v)
	}

	s.app.DBConnections().Set(float64(s.resources.Count()))

	return errors.Join(errs...)
}
