package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marosa/locator-service/internal/database"
	"github.com/marosa/locator-service/internal/ingest"
)

var ingestDryRun bool

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <store-list.xlsx>",
	Short: "Ingest the store-list spreadsheet into the directory",
	Long: `Parse the admin-maintained store-list spreadsheet and upsert its rows into
the store directory. Rows that fail validation are reported and skipped;
they never abort the import.`,
	Example: `  locator-service ingest stores.xlsx
  locator-service ingest stores.xlsx --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Parse and validate without writing to the database")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	result, err := ingest.ParseStoreList(f)
	if err != nil {
		return fmt.Errorf("parse store list: %w", err)
	}

	displayRowErrors(result.Errors)

	if ingestDryRun {
		logger.Info().Int("rows", len(result.Records)).Int("errors", len(result.Errors)).
			Msg("Dry run, nothing written")
		return nil
	}

	repo := database.NewStoreRepository(database.Pool())
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	upserted, err := repo.UpsertStores(ctx, result.Records)
	if err != nil {
		return fmt.Errorf("upsert stores: %w", err)
	}

	logger.Info().Int("upserted", upserted).Int("errors", len(result.Errors)).
		Msg("Store list ingested")

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d rows failed validation", len(result.Errors))
	}
	return nil
}

func displayRowErrors(rowErrors []ingest.RowError) {
	if len(rowErrors) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ROW\tERROR")
	for _, re := range rowErrors {
		fmt.Fprintf(w, "%d\t%s\n", re.Row, re.Message)
	}
	w.Flush()
}
