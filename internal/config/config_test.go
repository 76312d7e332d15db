package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "gpt-4.1", cfg.OpenAIItineraryModel)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAIChatModel)
	assert.Equal(t, 4, cfg.MaxStopsPerDay)
	assert.True(t, cfg.EnrichmentEnabled)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRIP_PLANNER_HTTP_PORT", "9090")
	t.Setenv("TRIP_PLANNER_STORE_DRIVER", "postgres")
	t.Setenv("TRIP_PLANNER_POSTGRES_DSN", "postgres://localhost/trips")
	t.Setenv("TRIP_PLANNER_MAX_STOPS_PER_DAY", "5")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 5, cfg.MaxStopsPerDay)
}

func TestPostgresRequiresDSN(t *testing.T) {
	t.Setenv("TRIP_PLANNER_STORE_DRIVER", "postgres")
	t.Setenv("TRIP_PLANNER_POSTGRES_DSN", "")

	_, err := New()
	require.Error(t, err)
}

func TestUnknownDriverRejected(t *testing.T) {
	t.Setenv("TRIP_PLANNER_STORE_DRIVER", "spanner")

	_, err := New()
	require.Error(t, err)
}

func TestStopBudgetClamped(t *testing.T) {
	cases := map[string]int{"1": 3, "3": 3, "5": 5, "9": 5}
	for in, want := range cases {
		t.Setenv("TRIP_PLANNER_MAX_STOPS_PER_DAY", in)
		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, want, cfg.MaxStopsPerDay, "input %s", in)
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	assert.True(t, cfg.IsTesting())
	assert.Equal(t, "memory", cfg.StoreDriver)
	require.NoError(t, cfg.ResolveDefaults())
}
