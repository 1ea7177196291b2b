package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marosa/locator-service/internal/hours"
	"github.com/marosa/locator-service/internal/places"
)

// ErrStoreNotFound is returned when a place ID has no directory row.
var ErrStoreNotFound = errors.New("store not found")

// StoreRecord is a directory row. Opening hours are stored as jsonb since
// the schedule is opaque to SQL: it is only ever evaluated in Go.
type StoreRecord struct {
	PlaceID    string
	Name       string
	City       string
	Latitude   float64
	Longitude  float64
	Rating     *float64
	ImageURL   string
	Hours      *hours.Schedule
	LastSeenAt time.Time
}

// Place converts a directory row into the place shape the search and
// status cores consume.
func (r StoreRecord) Place() places.Place {
	p := places.Place{
		PlaceID:      r.PlaceID,
		Position:     places.LatLng{Lat: r.Latitude, Lng: r.Longitude},
		Rating:       r.Rating,
		ImageURL:     r.ImageURL,
		City:         r.City,
		OpeningHours: r.Hours,
	}
	if r.Name != "" {
		p.DisplayName = &places.DisplayName{Text: r.Name}
	}
	return p
}

// RecordFromPlace converts a provider place into a directory row.
func RecordFromPlace(p places.Place) StoreRecord {
	return StoreRecord{
		PlaceID:   p.PlaceID,
		Name:      p.Name(),
		City:      p.City,
		Latitude:  p.Position.Lat,
		Longitude: p.Position.Lng,
		Rating:    p.Rating,
		ImageURL:  p.ImageURL,
		Hours:     p.OpeningHours,
	}
}

// StoreRepository persists the store directory.
type StoreRepository struct {
	pool *pgxpool.Pool
}

// NewStoreRepository creates a repository over the given pool.
func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

// EnsureSchema creates the stores table if it does not exist.
func (r *StoreRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS stores (
			place_id     TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			city         TEXT NOT NULL DEFAULT '',
			latitude     DOUBLE PRECISION NOT NULL,
			longitude    DOUBLE PRECISION NOT NULL,
			rating       DOUBLE PRECISION,
			image_url    TEXT NOT NULL DEFAULT '',
			hours        JSONB,
			last_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure stores schema: %w", err)
	}
	return nil
}

// UpsertStores writes a batch of directory rows, refreshing last_seen_at.
// Rows without a place ID are skipped: they cannot be addressed later.
func (r *StoreRepository) UpsertStores(ctx context.Context, records []StoreRecord) (int, error) {
	written := 0
	for _, rec := range records {
		if rec.PlaceID == "" {
			continue
		}

		var hoursJSON []byte
		if rec.Hours != nil && len(rec.Hours.Periods) > 0 {
			data, err := json.Marshal(rec.Hours)
			if err != nil {
				return written, fmt.Errorf("marshal hours for %s: %w", rec.PlaceID, err)
			}
			hoursJSON = data
		}

		_, err := r.pool.Exec(ctx, `
			INSERT INTO stores (place_id, name, city, latitude, longitude, rating, image_url, hours, last_seen_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			ON CONFLICT (place_id) DO UPDATE SET
				name = EXCLUDED.name,
				city = EXCLUDED.city,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude,
				rating = EXCLUDED.rating,
				image_url = EXCLUDED.image_url,
				hours = EXCLUDED.hours,
				last_seen_at = NOW()
		`, rec.PlaceID, rec.Name, rec.City, rec.Latitude, rec.Longitude, rec.Rating, rec.ImageURL, hoursJSON)
		if err != nil {
			return written, fmt.Errorf("upsert store %s: %w", rec.PlaceID, err)
		}
		written++
	}
	return written, nil
}

// ListStores returns the full directory ordered by name.
func (r *StoreRepository) ListStores(ctx context.Context) ([]StoreRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT place_id, name, city, latitude, longitude, rating, image_url, hours, last_seen_at
		FROM stores
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	return scanStores(rows)
}

// ListStoresInArea returns stores inside a map viewport bounding box.
func (r *StoreRepository) ListStoresInArea(ctx context.Context, swLat, swLng, neLat, neLng float64) ([]StoreRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT place_id, name, city, latitude, longitude, rating, image_url, hours, last_seen_at
		FROM stores
		WHERE latitude BETWEEN $1 AND $3
		  AND longitude BETWEEN $2 AND $4
		ORDER BY name
	`, swLat, swLng, neLat, neLng)
	if err != nil {
		return nil, fmt.Errorf("list stores in area: %w", err)
	}
	defer rows.Close()

	return scanStores(rows)
}

// GetStore fetches one directory row by place ID.
func (r *StoreRepository) GetStore(ctx context.Context, placeID string) (StoreRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT place_id, name, city, latitude, longitude, rating, image_url, hours, last_seen_at
		FROM stores
		WHERE place_id = $1
	`, placeID)

	rec, err := scanStore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoreRecord{}, ErrStoreNotFound
		}
		return StoreRecord{}, fmt.Errorf("get store %s: %w", placeID, err)
	}
	return rec, nil
}

func scanStores(rows pgx.Rows) ([]StoreRecord, error) {
	records := []StoreRecord{}
	for rows.Next() {
		rec, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return records, nil
}

func scanStore(row pgx.Row) (StoreRecord, error) {
	var rec StoreRecord
	var hoursJSON []byte
	err := row.Scan(&rec.PlaceID, &rec.Name, &rec.City, &rec.Latitude, &rec.Longitude,
		&rec.Rating, &rec.ImageURL, &hoursJSON, &rec.LastSeenAt)
	if err != nil {
		return StoreRecord{}, err
	}
	if len(hoursJSON) > 0 {
		var schedule hours.Schedule
		if err := json.Unmarshal(hoursJSON, &schedule); err == nil && len(schedule.Periods) > 0 {
			rec.Hours = &schedule
		}
	}
	return rec, nil
}
