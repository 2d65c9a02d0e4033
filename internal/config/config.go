/**
 * @description
 * Configuration loader for the Resource Capital backend.
 * Responsible for reading environment variables, setting defaults, and performing strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 * - standard "fmt": For error reporting
 *
 * @notes
 * - Fails fast if critical variables (Database URL) are missing.
 * - Uses a Singleton-like pattern where Load() returns a Config struct.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Vendors VendorsConfig
	Auth    AuthConfig
	Reports ReportsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        string
	Env         string // "development" or "production"
	SiteBaseURL string // public site origin used for sitemap URLs
}

// DBConfig holds PostgreSQL settings
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL string
}

// VendorsConfig holds upstream market-data vendor endpoints and keys
type VendorsConfig struct {
	MarketDataURL    string
	MarketDataAPIKey string
	QuoteFeedURL     string
	MetalsAPIURL     string
	MetalsAPIKey     string
	NewsFeedURL      string
	NewsFeedAPIKey   string
}

// AuthConfig holds settings for the hosted auth provider (Supabase)
type AuthConfig struct {
	JWKSURL string // URL to fetch JSON Web Key Set for JWT validation
}

// ReportsConfig holds settings for user-uploaded technical reports
type ReportsConfig struct {
	StorageDir   string
	MaxSizeBytes int64
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Env:         getEnv("GO_ENV", "development"),
			SiteBaseURL: strings.TrimRight(getEnv("SITE_BASE_URL", "https://resourcecapital.ca"), "/"),
		},
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Vendors: VendorsConfig{
			MarketDataURL:    getEnv("MARKET_DATA_URL", "https://api.marketdata.resourcecapital.ca"),
			MarketDataAPIKey: sanitizeCredential(getEnv("MARKET_DATA_API_KEY", "")),
			QuoteFeedURL:     getEnv("QUOTE_FEED_URL", "wss://feed.marketdata.resourcecapital.ca/quotes"),
			MetalsAPIURL:     getEnv("METALS_API_URL", "https://api.metals.dev/v1"),
			MetalsAPIKey:     sanitizeCredential(getEnv("METALS_API_KEY", "")),
			NewsFeedURL:      getEnv("NEWS_FEED_URL", "https://newswire.resourcecapital.ca"),
			NewsFeedAPIKey:   sanitizeCredential(getEnv("NEWS_FEED_API_KEY", "")),
		},
		Auth: AuthConfig{
			JWKSURL: getEnv("SUPABASE_JWKS_URL", ""),
		},
		Reports: ReportsConfig{
			StorageDir:   getEnv("REPORTS_DIR", "./data/reports"),
			MaxSizeBytes: int64(getEnvAsInt("REPORTS_MAX_MB", 50)) * 1024 * 1024,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWKSURL == "" && cfg.Server.Env != "test" {
		// Warning: strictly required for Auth middleware
		fmt.Println("Warning: SUPABASE_JWKS_URL is missing. Auth middleware will fail.")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func sanitizeCredential(value string) string {
	trimmed := strings.TrimSpace(value)
	return strings.Trim(trimmed, "\"")
}

// Helper to get env var as int
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
