package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"airless/internal/loader"
	"airless/internal/models"
	"airless/internal/scheduler"
	"airless/internal/tasks"
)

// Daemon keeps the airport dataset loaded and refreshed in the background
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *scheduler.Scheduler
	refresh   *tasks.RefreshTask
	done      chan struct{}
}

// Config holds daemon configuration
type Config struct {
	SourceBase      string        // http(s) URL or local directory holding the payloads
	AirportsName    string        // airport payload name relative to SourceBase
	SSIDName        string        // SSID payload name relative to SourceBase
	SourceTimeout   time.Duration // per-request HTTP timeout
	RefreshInterval time.Duration
	StrictJoin      bool
	OnChange        func(models.Collection) // optional, called when a new collection is published
}

// New creates a new daemon instance
func New(cfg Config) (*Daemon, error) {
	if cfg.SourceBase == "" {
		return nil, fmt.Errorf("SourceBase is required")
	}

	airportsName := loader.DefaultAirportsName
	if cfg.AirportsName != "" {
		airportsName = cfg.AirportsName
	}
	ssidName := loader.DefaultSSIDName
	if cfg.SSIDName != "" {
		ssidName = cfg.SSIDName
	}
	timeout := 10 * time.Second
	if cfg.SourceTimeout > 0 {
		timeout = cfg.SourceTimeout
	}
	interval := 5 * time.Minute
	if cfg.RefreshInterval > 0 {
		interval = cfg.RefreshInterval
	}

	source, err := loader.NewSource(cfg.SourceBase, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create payload source: %w", err)
	}

	l := loader.NewLoaderWithConfig(source, airportsName, ssidName, cfg.StrictJoin)
	refresh := tasks.NewRefreshTaskWithConfig(l, interval, cfg.OnChange)

	ctx, cancel := context.WithCancel(context.Background())
	sched := scheduler.New(ctx)
	sched.AddTask(refresh)

	return &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		scheduler: sched,
		refresh:   refresh,
		done:      make(chan struct{}),
	}, nil
}

func (d *Daemon) Start() error {
	slog.Info("Starting daemon")

	d.scheduler.Start()

	go func() {
		<-d.ctx.Done()
		close(d.done)
	}()

	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")
	d.cancel()
	<-d.done

	d.scheduler.Stop()

	slog.Info("Daemon stopped")
	return nil
}

// Latest returns the most recently published airport collection, or nil before the first load finishes
func (d *Daemon) Latest() models.Collection {
	return d.refresh.Latest()
}
