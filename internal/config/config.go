// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Weighting scheme identifiers for the risk questionnaire.
// The 3-question weighted form is canonical; the 5-question equal-weight
// form is kept as a configuration variant for parity with older clients.
const (
	SchemeWeightedThree = "weighted-3q"
	SchemeEqualFive     = "equal-5q"
)

// Config holds application configuration
type Config struct {
	DataDir           string // Base directory for all databases (always absolute)
	MarketDataAPIKey  string // Alpha Vantage key for quote enrichment (optional)
	MarketDataBaseURL string
	UniverseFile      string // Optional YAML override for the built-in stock universe
	WeightingScheme   string // weighted-3q (default) or equal-5q
	QuoteRefreshSpec  string // Cron spec for the quote cache warm job
	CacheCleanupSpec  string // Cron spec for expired cache cleanup
	LogLevel          string
	Port              int
	DevMode           bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory with fallback logic
	dataDir := getEnv("CHOPRA_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:           absDataDir,
		Port:              getEnvAsInt("CHOPRA_PORT", 8010),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		MarketDataAPIKey:  getEnv("MARKET_DATA_API_KEY", ""),
		MarketDataBaseURL: getEnv("MARKET_DATA_BASE_URL", "https://www.alphavantage.co/query"),
		UniverseFile:      getEnv("UNIVERSE_FILE", ""),
		WeightingScheme:   getEnv("RISK_WEIGHTING_SCHEME", SchemeWeightedThree),
		QuoteRefreshSpec:  getEnv("QUOTE_REFRESH_SPEC", "@every 10m"),
		CacheCleanupSpec:  getEnv("CACHE_CLEANUP_SPEC", "@daily"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	switch c.WeightingScheme {
	case SchemeWeightedThree, SchemeEqualFive:
	default:
		return fmt.Errorf("unknown risk weighting scheme: %s", c.WeightingScheme)
	}

	// Market data credentials are optional; without them the service runs
	// with placeholder pricing (degraded but functional).
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
