package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.QueueBackend)
	assert.Equal(t, "builtin", cfg.SeedSource)
	assert.Equal(t, time.Second, cfg.LoginDelay)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 3, cfg.DashboardLimit)
	assert.False(t, cfg.Production())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOGIN_DELAY", "0s")
	t.Setenv("QUEUE_BACKEND", "redis")
	t.Setenv("RATE_LIMIT_PER_MIN", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, time.Duration(0), cfg.LoginDelay)
	assert.Equal(t, "redis", cfg.QueueBackend)
	assert.Equal(t, 10, cfg.RateLimitPerMin)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":      {"ACCESS_TTL": "soon"},
		"unknown queue":     {"QUEUE_BACKEND": "kafka"},
		"file without path": {"SEED_SOURCE": "file"},
		"pg without url":    {"SEED_SOURCE": "postgres"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
