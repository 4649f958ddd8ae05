package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEE_PROJECT", "test-project")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "test-project", cfg.GEEProject)
	assert.Empty(t, cfg.GEEBaseURL)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, time.Hour, cfg.ResultTTL)
	assert.Equal(t, 2023, cfg.LatestLandcoverYear)
	assert.False(t, cfg.RequireAgriMask)
	assert.Equal(t, 10, cfg.DetectRateLimit)
}

func TestLoadMissingProject(t *testing.T) {
	t.Setenv("GEE_PROJECT", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("RESULT_TTL", "30m")
	t.Setenv("LATEST_LANDCOVER_YEAR", "2024")
	t.Setenv("REQUIRE_AGRI_MASK", "true")
	t.Setenv("DETECT_RATE_LIMIT", "5")
	t.Setenv("HTTP_TIMEOUT", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port) // bare port numbers gain the colon
	assert.Equal(t, 30*time.Minute, cfg.ResultTTL)
	assert.Equal(t, 2024, cfg.LatestLandcoverYear)
	assert.True(t, cfg.RequireAgriMask)
	assert.Equal(t, 5, cfg.DetectRateLimit)
	assert.Equal(t, 90*time.Second, cfg.HTTPTimeout)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"RESULT_TTL", "soon"},
		{"LATEST_LANDCOVER_YEAR", "twenty-three"},
		{"REQUIRE_AGRI_MASK", "maybe"},
		{"DETECT_RATE_LIMIT", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
