package directory

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks the number of snapshot hits per city key.
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_cache_hits_total",
		Help: "Total number of directory cache hits by city",
	}, []string{"city"})

	// cacheMisses tracks the number of snapshot misses per city key.
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_cache_misses_total",
		Help: "Total number of directory cache misses by city",
	}, []string{"city"})

	// cacheLoadDuration tracks the time taken to load a snapshot.
	cacheLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "directory_cache_load_duration_seconds",
		Help:    "Time taken to load a directory snapshot by city",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"city"})

	// cacheLoadErrors tracks snapshot load errors.
	cacheLoadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_cache_load_errors_total",
		Help: "Total number of directory snapshot load errors by city",
	}, []string{"city"})
)

// metricKey keeps the label space bounded: known cities keep their name,
// the full-directory key becomes "all".
func metricKey(city string) string {
	if city == "" {
		return "all"
	}
	return city
}

func recordHit(city string) {
	cacheHits.WithLabelValues(metricKey(city)).Inc()
}

func recordMiss(city string) {
	cacheMisses.WithLabelValues(metricKey(city)).Inc()
}

func recordLoadDuration(city string, d time.Duration) {
	cacheLoadDuration.WithLabelValues(metricKey(city)).Observe(d.Seconds())
}

func recordLoadError(city string) {
	cacheLoadErrors.WithLabelValues(metricKey(city)).Inc()
}
