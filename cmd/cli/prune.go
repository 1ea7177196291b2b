package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marosa/locator-service/internal/database"
	"github.com/marosa/locator-service/internal/jobs"
)

var pruneRetentionDays int

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove stores the place feed stopped reporting",
	Example: `  locator-service prune
  locator-service prune --retention-days 14`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().IntVar(&pruneRetentionDays, "retention-days", jobs.DefaultCleanupConfig().StoreRetentionDays,
		"Days a store stays in the directory after it was last seen")
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	deleted, err := jobs.CleanupStaleStores(ctx, database.Pool(), jobs.CleanupConfig{
		StoreRetentionDays: pruneRetentionDays,
	})
	if err != nil {
		return fmt.Errorf("prune stale stores: %w", err)
	}

	logger.Info().Int("deleted", deleted).Msg("Prune complete")
	return nil
}
