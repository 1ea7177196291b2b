package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marosa/locator-service/internal/httpclient/ratelimit"
)

func fastRetryClient(maxRetries int) *Client {
	return NewClient(ratelimit.Config{
		RequestsPerSecond: 1000,
		MaxRetries:        maxRetries,
		InitialBackoffMs:  1,
		MaxBackoffMs:      2,
	})
}

func TestDoResendsBodyOnRetry(t *testing.T) {
	var attempts int32
	bodies := make(chan string, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies <- string(data)

		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := fastRetryClient(1)
	resp, err := c.Do(context.Background(), http.MethodPost, srv.URL, strings.NewReader(`{"slug":"weekly"}`))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	assert.Equal(t, `{"slug":"weekly"}`, <-bodies)
	assert.Equal(t, `{"slug":"weekly"}`, <-bodies, "retried request must carry the full body")
}

func TestDoFailsAfterRetriesExhausted(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := fastRetryClient(2)
	_, err := c.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestDoDoesNotRetryClientErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := fastRetryClient(3)
	_, err := c.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}
