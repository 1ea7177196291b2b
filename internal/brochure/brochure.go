// Package brochure manages the промоционална брошура (promotional leaflet):
// page images imported into blob storage plus a manifest describing them.
package brochure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marosa/locator-service/internal/pkg/cuid2"
	"github.com/marosa/locator-service/internal/storage"
)

// ErrNotFound is returned when no brochure exists under the requested slug.
var ErrNotFound = errors.New("brochure not found")

// Page describes a single brochure page.
type Page struct {
	Number   int    `json:"number"`
	ImageURL string `json:"imageUrl"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Manifest describes an imported brochure.
type Manifest struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	PageCount  int       `json:"pageCount"`
	Pages      []Page    `json:"pages"`
	ImportID   string    `json:"importId"`
	ImportedAt time.Time `json:"importedAt"`
}

// PageAsset is one page supplied to Import: the raw image plus its
// display dimensions.
type PageAsset struct {
	Content []byte
	Ext     string
	Width   int
	Height  int
}

// Service stores and serves brochures through a storage backend.
type Service struct {
	store   storage.Storage
	baseURL string
	logger  zerolog.Logger
}

// NewService creates a brochure service. baseURL is the public prefix the
// stored page keys are served under.
func NewService(store storage.Storage, baseURL string, logger zerolog.Logger) *Service {
	return &Service{
		store:   store,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "brochure").Logger(),
	}
}

// Import stores the page images and writes the manifest. Pages are numbered
// in the order given, starting at 1. A previously imported brochure under
// the same slug is replaced.
func (s *Service) Import(ctx context.Context, slug, title string, assets []PageAsset) (*Manifest, error) {
	if slug == "" {
		return nil, fmt.Errorf("brochure slug is required")
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("brochure has no pages")
	}

	importID := cuid2.GeneratePrefixedId("imp", cuid2.PrefixedIdOptions{TimeSortable: true})
	now := time.Now().UTC()

	manifest := &Manifest{
		Slug:       slug,
		Title:      title,
		PageCount:  len(assets),
		ImportID:   importID,
		ImportedAt: now,
	}

	for i, asset := range assets {
		num := i + 1
		ext := asset.Ext
		if ext == "" {
			ext = "jpg"
		}
		key := storage.BuildPageKey(slug, num, ext)
		meta := &storage.Metadata{
			ContentType:  contentTypeForExt(ext),
			BrochureSlug: slug,
			ImportedAt:   now,
			Custom:       map[string]string{"importId": importID},
		}
		if err := s.store.Put(ctx, key, asset.Content, meta); err != nil {
			return nil, fmt.Errorf("store page %d: %w", num, err)
		}
		manifest.Pages = append(manifest.Pages, Page{
			Number:   num,
			ImageURL: s.pageURL(key),
			Width:    asset.Width,
			Height:   asset.Height,
		})
	}

	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestKey := storage.BuildManifestKey(slug)
	meta := &storage.Metadata{
		ContentType:  "application/json",
		BrochureSlug: slug,
		ImportedAt:   now,
	}
	if err := s.store.Put(ctx, manifestKey, manifestBytes, meta); err != nil {
		return nil, fmt.Errorf("store manifest: %w", err)
	}

	s.logger.Info().
		Str("slug", slug).
		Str("import_id", importID).
		Int("pages", manifest.PageCount).
		Msg("Brochure imported")

	return manifest, nil
}

// Get loads the manifest for a brochure.
func (s *Service) Get(ctx context.Context, slug string) (*Manifest, error) {
	key := storage.BuildManifestKey(slug)
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check manifest: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	content, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &manifest, nil
}

// GetPages returns one page window of the brochure. page is 1-based,
// pageSize the number of brochure pages per window.
func (s *Service) GetPages(ctx context.Context, slug string, page, pageSize int) ([]Page, int, error) {
	manifest, err := s.Get(ctx, slug)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = manifest.PageCount
	}

	start := (page - 1) * pageSize
	if start >= len(manifest.Pages) {
		return []Page{}, manifest.PageCount, nil
	}
	end := start + pageSize
	if end > len(manifest.Pages) {
		end = len(manifest.Pages)
	}
	return manifest.Pages[start:end], manifest.PageCount, nil
}

// Delete removes a brochure's manifest and all of its page images.
func (s *Service) Delete(ctx context.Context, slug string) error {
	keys, err := s.store.List(ctx, fmt.Sprintf("brochures/%s/", slug))
	if err != nil {
		return fmt.Errorf("list brochure files: %w", err)
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func (s *Service) pageURL(key string) string {
	if s.baseURL == "" {
		return "/" + key
	}
	return s.baseURL + "/" + key
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
