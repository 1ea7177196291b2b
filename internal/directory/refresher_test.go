package directory

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marosa/locator-service/internal/places"
)

func testRefresherLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestRefresherReloadsPeriodically(t *testing.T) {
	var loads int32
	loader := func(ctx context.Context, city string) ([]places.Place, error) {
		atomic.AddInt32(&loads, 1)
		return fixedPool("Мароса София"), nil
	}

	cache := NewCache(loader, Config{TTL: time.Minute})
	require.NoError(t, cache.Refresh(context.Background(), ""))

	r := NewRefresher(cache, testRefresherLogger(), 10*time.Millisecond)
	done := make(chan struct{})
	go func() {
		r.Start(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&loads) >= 3
	}, time.Second, 5*time.Millisecond, "ticker should keep reloading the snapshot")

	r.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestRefresherStopIsIdempotent(t *testing.T) {
	loader := func(ctx context.Context, city string) ([]places.Place, error) {
		return fixedPool("Мароса Варна"), nil
	}
	r := NewRefresher(NewCache(loader, Config{}), testRefresherLogger(), time.Hour)

	done := make(chan struct{})
	go func() {
		r.Start(context.Background())
		close(done)
	}()

	r.Stop()
	assert.NotPanics(t, func() { r.Stop() })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestRefresherStopsOnContextCancel(t *testing.T) {
	loader := func(ctx context.Context, city string) ([]places.Place, error) {
		return fixedPool("Мароса Бургас"), nil
	}
	r := NewRefresher(NewCache(loader, Config{}), testRefresherLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop on context cancel")
	}
}
