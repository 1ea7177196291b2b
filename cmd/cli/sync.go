package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marosa/locator-service/internal/database"
	"github.com/marosa/locator-service/internal/httpclient"
	"github.com/marosa/locator-service/internal/httpclient/ratelimit"
	"github.com/marosa/locator-service/internal/places"
)

var syncProviderURL string

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the store directory from the place provider feed",
	Long: `Fetch the place directory from the provider and upsert every place into
the store directory. Stores the feed stops reporting are removed later by
the prune command once their retention window passes.`,
	Example: `  locator-service sync
  locator-service sync --provider-url https://places.example.com`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncProviderURL, "provider-url", "", "Place provider base URL (defaults to provider.base_url from config)")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	baseURL := syncProviderURL
	if baseURL == "" && cfg != nil {
		baseURL = cfg.Provider.BaseURL
	}
	if baseURL == "" {
		return fmt.Errorf("no provider URL: set --provider-url or provider.base_url")
	}

	client := httpclient.NewClient(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		MaxRetries:        cfg.RateLimit.MaxRetries,
		InitialBackoffMs:  cfg.RateLimit.InitialBackoffMs,
		MaxBackoffMs:      cfg.RateLimit.MaxBackoffMs,
	})
	provider := places.NewProvider(baseURL, client)

	logger.Info().Str("provider", baseURL).Msg("Fetching place directory")
	pool, err := provider.FetchDirectory(ctx)
	if err != nil {
		return fmt.Errorf("fetch place directory: %w", err)
	}

	records := make([]database.StoreRecord, 0, len(pool))
	for _, p := range pool {
		records = append(records, database.RecordFromPlace(p))
	}

	repo := database.NewStoreRepository(database.Pool())
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	upserted, err := repo.UpsertStores(ctx, records)
	if err != nil {
		return fmt.Errorf("upsert stores: %w", err)
	}

	logger.Info().Int("fetched", len(pool)).Int("upserted", upserted).Msg("Directory synced")
	return nil
}
