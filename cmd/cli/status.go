package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marosa/locator-service/internal/database"
	"github.com/marosa/locator-service/internal/hours"
)

var statusAt string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <placeId>",
	Short: "Evaluate a store's opening status",
	Long: `Load one store from the directory and evaluate its weekly schedule. With
--at the schedule is evaluated at that instant instead of now, which is
useful for checking overnight and closing-soon edges.`,
	Example: `  locator-service status loc-sof-01
  locator-service status loc-sof-01 --at 2026-09-05T01:30:00+03:00`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusAt, "at", "", "Evaluate at this RFC 3339 instant instead of now")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	repo := database.NewStoreRepository(database.Pool())
	record, err := repo.GetStore(ctx, args[0])
	if err != nil {
		return fmt.Errorf("load store %s: %w", args[0], err)
	}

	hoursCfg := hours.DefaultConfig()
	if cfg != nil {
		hoursCfg = hours.Config{
			Timezone:          cfg.Hours.Timezone,
			ClosingSoonWindow: time.Duration(cfg.Hours.ClosingSoonMinutes) * time.Minute,
			LookaheadDays:     cfg.Hours.LookaheadDays,
		}
	}
	evaluator, err := hours.NewEvaluator(hoursCfg)
	if err != nil {
		return fmt.Errorf("create evaluator: %w", err)
	}

	var status hours.Status
	if statusAt != "" {
		at, err := time.Parse(time.RFC3339, statusAt)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
		status = evaluator.Compute(record.Hours, at)
	} else {
		status = evaluator.ComputeNow(record.Hours)
	}

	fmt.Printf("%s (%s)\n", record.Name, record.PlaceID)
	fmt.Printf("  state:  %s\n", status.State)
	fmt.Printf("  status: %s\n", status.StatusLabel)
	if status.DetailLabel != "" {
		fmt.Printf("  detail: %s\n", status.DetailLabel)
	}
	return nil
}
