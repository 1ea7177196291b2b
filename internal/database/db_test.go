package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolConfigWithDefaults(t *testing.T) {
	filled := PoolConfig{}.withDefaults()
	assert.Equal(t, DefaultPoolConfig(), filled)

	partial := PoolConfig{MaxConns: 50}.withDefaults()
	assert.Equal(t, 50, partial.MaxConns)
	assert.Equal(t, 5, partial.MinConns)
	assert.Equal(t, time.Hour, partial.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, partial.MaxConnIdleTime)
	assert.Equal(t, time.Minute, partial.HealthCheckPeriod)
}
