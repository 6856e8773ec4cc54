package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"airless/internal/loader"
	"airless/internal/models"
)

// Fetcher runs the load pipeline and reports its errors
type Fetcher interface {
	Fetch(ctx context.Context) (*loader.Snapshot, error)
}

// RefreshTask reloads the airport dataset on an interval and publishes the latest collection
type RefreshTask struct {
	fetcher  Fetcher
	interval time.Duration
	onChange func(models.Collection) // called with each newly published collection

	mu        sync.RWMutex
	latest    models.Collection
	checksum  string
	loadedAt  time.Time
	failures  int // consecutive failed loads
	published bool
}

// Default refresh interval is 5 minutes
func NewRefreshTask(fetcher Fetcher) *RefreshTask {
	return NewRefreshTaskWithConfig(fetcher, 5*time.Minute, nil)
}

// NewRefreshTaskWithConfig creates a refresh task with a custom interval and change callback
func NewRefreshTaskWithConfig(fetcher Fetcher, interval time.Duration, onChange func(models.Collection)) *RefreshTask {
	return &RefreshTask{
		fetcher:  fetcher,
		interval: interval,
		onChange: onChange,
	}
}

func (r *RefreshTask) Name() string {
	return "airport_refresh"
}

func (r *RefreshTask) Interval() time.Duration {
	return r.interval
}

// Run loads the dataset once. A failed load keeps the last good collection;
// before anything has loaded the fallback airport is published instead.
// An unchanged payload checksum leaves the published collection as is.
func (r *RefreshTask) Run(ctx context.Context) error {
	snap, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.mu.Lock()
		r.failures++
		failures := r.failures
		first := !r.published
		if first {
			r.latest = models.FallbackCollection()
			r.published = true
		}
		latest := r.latest
		r.mu.Unlock()

		if first {
			slog.Warn("Publishing fallback airport until a load succeeds")
			r.notify(latest)
		}
		return fmt.Errorf("refresh failed (%d in a row): %w", failures, err)
	}

	r.mu.Lock()
	r.failures = 0
	unchanged := r.checksum != "" && snap.Checksum == r.checksum
	r.loadedAt = snap.LoadedAt
	if unchanged {
		r.mu.Unlock()
		slog.Debug("Airport data unchanged", "checksum", snap.Checksum)
		return nil
	}
	r.latest = snap.Airports
	r.checksum = snap.Checksum
	r.published = true
	r.mu.Unlock()

	slog.Info("Published airport data",
		"load_id", snap.ID.String(),
		"airports", snap.Airports.Len(),
		"verified", snap.Airports.Verified(),
	)
	r.notify(snap.Airports)
	return nil
}

func (r *RefreshTask) notify(c models.Collection) {
	if r.onChange != nil {
		r.onChange(c)
	}
}

// Latest returns the most recently published collection, or nil before the first run.
// Callers must treat the returned collection as read-only.
func (r *RefreshTask) Latest() models.Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// LoadedAt returns the time of the last successful load
func (r *RefreshTask) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}
