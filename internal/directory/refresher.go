package directory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Refresher periodically reloads the directory snapshots so the search
// pools track the store database without request-path reload latency.
type Refresher struct {
	cache    *Cache
	logger   *zerolog.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewRefresher creates a refresher for the given cache.
func NewRefresher(cache *Cache, logger *zerolog.Logger, interval time.Duration) *Refresher {
	return &Refresher{
		cache:    cache,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic refresh loop. It blocks until the context is
// cancelled or Stop is called, so run it in its own goroutine.
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info().
		Dur("interval", r.interval).
		Msg("Starting directory refresher")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Directory refresher stopping (context cancelled)")
			return
		case <-r.stopChan:
			r.logger.Info().Msg("Directory refresher stopping (stop signal)")
			return
		case <-ticker.C:
			if err := r.cache.RefreshAll(ctx); err != nil {
				r.logger.Error().Err(err).Msg("Failed to refresh directory snapshots")
			}
		}
	}
}

// Stop signals the refresher to stop. Safe to call more than once.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
}
