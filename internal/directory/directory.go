// Package directory keeps the search candidate pools in memory so the
// search endpoint never touches Postgres on a keystroke. Snapshots are
// immutable and swapped atomically; loads go through singleflight so a
// stampede of requests after expiry triggers a single database read.
package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/marosa/locator-service/internal/cities"
	"github.com/marosa/locator-service/internal/places"
)

// Loader fetches the place pool for one city, or the full pool when the
// city key is empty.
type Loader func(ctx context.Context, city string) ([]places.Place, error)

// Config tunes cache behavior.
type Config struct {
	TTL               time.Duration
	LoadTimeout       time.Duration
	WarmupConcurrency int64
}

// DefaultConfig returns production cache settings.
func DefaultConfig() Config {
	return Config{
		TTL:               5 * time.Minute,
		LoadTimeout:       30 * time.Second,
		WarmupConcurrency: 4,
	}
}

// Snapshot is an immutable view of one candidate pool. Callers must not
// mutate the slices.
type Snapshot struct {
	City     string
	Cities   []cities.City
	Places   []places.Place
	LoadedAt time.Time
}

type entry struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

// Cache holds per-city directory snapshots.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry

	loader    Loader
	config    Config
	sf        singleflight.Group
	warmupSem *semaphore.Weighted
	logger    zerolog.Logger
}

// NewCache creates a directory cache over the given loader.
func NewCache(loader Loader, config Config) *Cache {
	if config.TTL <= 0 {
		config.TTL = DefaultConfig().TTL
	}
	if config.LoadTimeout <= 0 {
		config.LoadTimeout = DefaultConfig().LoadTimeout
	}
	if config.WarmupConcurrency <= 0 {
		config.WarmupConcurrency = DefaultConfig().WarmupConcurrency
	}
	return &Cache{
		entries:   make(map[string]*entry),
		loader:    loader,
		config:    config,
		warmupSem: semaphore.NewWeighted(config.WarmupConcurrency),
		logger:    log.With().Str("component", "directory_cache").Logger(),
	}
}

// Get returns the snapshot for a city key ("" = the full directory),
// loading it when missing or expired.
func (c *Cache) Get(ctx context.Context, city string) (*Snapshot, error) {
	e := c.entry(city)

	e.mu.RLock()
	snap := e.snapshot
	e.mu.RUnlock()

	if snap != nil && time.Since(snap.LoadedAt) < c.config.TTL {
		recordHit(city)
		return snap, nil
	}
	recordMiss(city)

	if err := c.load(ctx, city); err != nil {
		// Serve a stale snapshot over an error when one exists.
		if snap != nil {
			c.logger.Warn().Err(err).Str("city", city).Msg("Serving stale directory snapshot")
			return snap, nil
		}
		return nil, err
	}

	e.mu.RLock()
	snap = e.snapshot
	e.mu.RUnlock()
	return snap, nil
}

// Refresh force-reloads one city key.
func (c *Cache) Refresh(ctx context.Context, city string) error {
	return c.load(ctx, city)
}

// RefreshAll reloads every key currently held, plus the full directory.
func (c *Cache) RefreshAll(ctx context.Context) error {
	keys := c.keys()

	var wg sync.WaitGroup
	errCh := make(chan error, len(keys))
	for _, key := range keys {
		if err := c.warmupSem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("acquire refresh slot: %w", err)
		}
		wg.Add(1)
		go func(key string) {
			defer c.warmupSem.Release(1)
			defer wg.Done()
			if err := c.load(ctx, key); err != nil {
				c.logger.Error().Err(err).Str("city", key).Msg("Failed to refresh directory snapshot")
				errCh <- fmt.Errorf("city %q: %w", key, err)
			}
		}(key)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// load fetches a fresh snapshot through singleflight and swaps it in.
func (c *Cache) load(ctx context.Context, city string) error {
	_, err, _ := c.sf.Do(city, func() (interface{}, error) {
		// A dedicated load context: cancelling one waiting request must
		// not fail the load for the others.
		loadCtx, cancel := context.WithTimeout(context.Background(), c.config.LoadTimeout)
		defer cancel()

		start := time.Now()
		pool, loadErr := c.loader(loadCtx, city)
		if loadErr != nil {
			recordLoadError(city)
			return nil, loadErr
		}
		recordLoadDuration(city, time.Since(start))

		snap := &Snapshot{
			City:     city,
			Cities:   cities.All(),
			Places:   pool,
			LoadedAt: time.Now(),
		}

		e := c.entry(city)
		e.mu.Lock()
		e.snapshot = snap
		e.mu.Unlock()

		c.logger.Debug().Str("city", city).Int("places", len(pool)).
			Dur("took", time.Since(start)).Msg("Directory snapshot loaded")
		return snap, nil
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (c *Cache) entry(city string) *entry {
	c.mu.RLock()
	e, ok := c.entries[city]
	c.mu.RUnlock()
	if ok {
		return e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok = c.entries[city]; ok {
		return e
	}
	e = &entry{}
	c.entries[city] = e
	return e
}

func (c *Cache) keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries)+1)
	seen := false
	for k := range c.entries {
		if k == "" {
			seen = true
		}
		keys = append(keys, k)
	}
	if !seen {
		keys = append(keys, "")
	}
	return keys
}
