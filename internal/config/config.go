package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port                string
	GEEProject          string
	GEEBaseURL          string
	GEECredentialsFile  string
	HTTPTimeout         time.Duration
	ResultTTL           time.Duration
	LatestLandcoverYear int
	RequireAgriMask     bool
	DetectRateLimit     int
}

// Load reads configuration from environment variables, applying defaults
// for everything except the remote project, which is required.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", ":8080"),
		GEEProject:         os.Getenv("GEE_PROJECT"),
		GEEBaseURL:         getEnv("GEE_BASE_URL", ""),
		GEECredentialsFile: os.Getenv("GEE_CREDENTIALS_FILE"),
	}

	if cfg.GEEProject == "" {
		return nil, fmt.Errorf("GEE_PROJECT is required")
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.ResultTTL, err = getDuration("RESULT_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.LatestLandcoverYear, err = getInt("LATEST_LANDCOVER_YEAR", 2023); err != nil {
		return nil, err
	}
	if cfg.RequireAgriMask, err = getBool("REQUIRE_AGRI_MASK", false); err != nil {
		return nil, err
	}
	if cfg.DetectRateLimit, err = getInt("DETECT_RATE_LIMIT", 10); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
