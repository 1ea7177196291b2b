package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marosa/locator-service/internal/hours"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	config, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	require.NoError(t, err, "Failed to create connection pool")

	repo := NewStoreRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx), "Failed to create schema")

	cleanup := func() {
		pool.Close()
		testcontainers.TerminateContainer(container)
	}
	return pool, cleanup
}

func TestStoreRepositoryRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewStoreRepository(pool)

	rating := 4.6
	records := []StoreRecord{
		{
			PlaceID:   "pl-sofia-center",
			Name:      "Мароса София Център",
			City:      "Sofia",
			Latitude:  42.6977,
			Longitude: 23.3219,
			Rating:    &rating,
			ImageURL:  "https://img.example/sofia.jpg",
			Hours: &hours.Schedule{Periods: []hours.Period{
				{OpenDay: 1, OpenTime: "0900", CloseDay: 1, CloseTime: "1800"},
			}},
		},
		{
			PlaceID:   "pl-burgas",
			Name:      "Мароса Бургас",
			City:      "Burgas",
			Latitude:  42.5048,
			Longitude: 27.4626,
		},
		{
			// No place ID, must be skipped.
			Name:     "Ad-hoc entry",
			Latitude: 1, Longitude: 1,
		},
	}

	written, err := repo.UpsertStores(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, written, "row without place_id should be skipped")

	all, err := repo.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := repo.GetStore(ctx, "pl-sofia-center")
	require.NoError(t, err)
	assert.Equal(t, "Мароса София Център", got.Name)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4.6, *got.Rating)
	require.NotNil(t, got.Hours)
	require.Len(t, got.Hours.Periods, 1)
	assert.Equal(t, "0900", got.Hours.Periods[0].OpenTime)

	// Store without hours round-trips with a nil schedule.
	burgas, err := repo.GetStore(ctx, "pl-burgas")
	require.NoError(t, err)
	assert.Nil(t, burgas.Hours)

	_, err = repo.GetStore(ctx, "pl-missing")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreRepositoryUpsertRefreshes(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewStoreRepository(pool)

	rec := StoreRecord{PlaceID: "pl-1", Name: "Old Name", Latitude: 42, Longitude: 23}
	_, err := repo.UpsertStores(ctx, []StoreRecord{rec})
	require.NoError(t, err)

	rec.Name = "New Name"
	rec.City = "Varna"
	_, err = repo.UpsertStores(ctx, []StoreRecord{rec})
	require.NoError(t, err)

	got, err := repo.GetStore(ctx, "pl-1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "Varna", got.City)
	assert.WithinDuration(t, time.Now(), got.LastSeenAt, time.Minute)
}

func TestStoreRepositoryArea(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewStoreRepository(pool)

	_, err := repo.UpsertStores(ctx, []StoreRecord{
		{PlaceID: "pl-sofia", Name: "София", Latitude: 42.6977, Longitude: 23.3219},
		{PlaceID: "pl-varna", Name: "Варна", Latitude: 43.2141, Longitude: 27.9147},
	})
	require.NoError(t, err)

	// Viewport around Sofia only.
	area, err := repo.ListStoresInArea(ctx, 42.5, 23.0, 42.9, 23.7)
	require.NoError(t, err)
	require.Len(t, area, 1)
	assert.Equal(t, "pl-sofia", area[0].PlaceID)
}
