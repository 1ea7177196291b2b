package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marosa/locator-service/internal/brochure"
	"github.com/marosa/locator-service/internal/storage"
)

var (
	brochureSlug  string
	brochureTitle string
)

// brochureCmd groups brochure subcommands
var brochureCmd = &cobra.Command{
	Use:   "brochure",
	Short: "Manage promotional brochures",
}

// brochureImportCmd represents the brochure import command
var brochureImportCmd = &cobra.Command{
	Use:   "import <pages-dir>",
	Short: "Import brochure page images from a directory",
	Long: `Import every image in the given directory as one brochure. Files are
ordered by name, so page-01.jpg, page-02.jpg, ... imports in page order.
An existing brochure under the same slug is replaced.`,
	Example: `  locator-service brochure import ./pages --slug weekly --title "Седмична брошура"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runBrochureImport,
}

func init() {
	rootCmd.AddCommand(brochureCmd)
	brochureCmd.AddCommand(brochureImportCmd)

	brochureImportCmd.Flags().StringVar(&brochureSlug, "slug", "weekly", "Brochure slug")
	brochureImportCmd.Flags().StringVar(&brochureTitle, "title", "", "Brochure title")
	brochureImportCmd.MarkFlagRequired("title")
}

func runBrochureImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if cfg == nil {
		return fmt.Errorf("config required for brochure import")
	}

	assets, err := readPageAssets(args[0])
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return fmt.Errorf("no page images found in %s", args[0])
	}

	store, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	svc := brochure.NewService(store, cfg.Brochure.BaseURL, *logger)

	manifest, err := svc.Import(ctx, brochureSlug, brochureTitle, assets)
	if err != nil {
		return fmt.Errorf("import brochure: %w", err)
	}

	logger.Info().Str("slug", manifest.Slug).Str("import_id", manifest.ImportID).
		Int("pages", manifest.PageCount).Msg("Brochure imported")
	return nil
}

// readPageAssets loads all image files in dir, ordered by file name.
func readPageAssets(dir string) ([]brochure.PageAsset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	assets := make([]brochure.PageAsset, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		if ext == "jpeg" {
			ext = "jpg"
		}
		assets = append(assets, brochure.PageAsset{Content: content, Ext: ext})
	}
	return assets, nil
}
