package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// CleanupConfig configures retention policies for cleanup jobs
type CleanupConfig struct {
	// StoreRetentionDays is how long a store stays in the directory after
	// the place provider stops reporting it.
	StoreRetentionDays int
}

// DefaultCleanupConfig returns sensible retention defaults
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		StoreRetentionDays: 30,
	}
}

// CleanupStaleStores removes stores that have dropped out of the place
// directory feed. Returns the number of stores deleted.
func CleanupStaleStores(ctx context.Context, db *pgxpool.Pool, cfg CleanupConfig) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -cfg.StoreRetentionDays)

	result, err := db.Exec(ctx, `
		DELETE FROM stores
		WHERE last_seen_at < $1
	`, cutoff)

	if err != nil {
		return 0, fmt.Errorf("cleanup stale stores: %w", err)
	}

	rowsAffected := int(result.RowsAffected())
	log.Info().Int("rows_deleted", rowsAffected).Time("cutoff", cutoff).
		Msg("cleaned up stale stores")

	return rowsAffected, nil
}

// dbPoolGetter is a function that returns the database pool
// This will be set by the database package initialization
var dbPoolGetter func() *pgxpool.Pool

// RegisterDBPoolGetter registers the database pool getter function
// This should be called from the database package initialization
func RegisterDBPoolGetter(getter func() *pgxpool.Pool) {
	dbPoolGetter = getter
}

// CleanupStaleStoresDefault runs the stale-store cleanup against the
// registered pool with default retention.
func CleanupStaleStoresDefault(ctx context.Context) (int, error) {
	if dbPoolGetter == nil {
		return 0, fmt.Errorf("database pool not registered")
	}
	return CleanupStaleStores(ctx, dbPoolGetter(), DefaultCleanupConfig())
}
