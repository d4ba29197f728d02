package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Defaults are overlaid by an optional TOML file (CONFIG_FILE), which is in
// turn overridden by environment variables (and .env).
type Config struct {
	Server   ServerConfig  `toml:"server"`
	Auth     AuthConfig    `toml:"auth"`
	Catalog  CatalogConfig `toml:"catalog"`
	Cache    CacheConfig   `toml:"cache"`
	Pricing  PricingConfig `toml:"pricing"`
	LogLevel string        `toml:"log_level"`
}

type ServerConfig struct {
	Port            string `toml:"port"`
	Host            string `toml:"host"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
}

type AuthConfig struct {
	APIKeys []string `toml:"api_keys"` // keys accepted on admin routes
}

// Catalog sources
const (
	SourceMemory = "memory"
	SourceYAML   = "yaml"
	SourceSQLite = "sqlite"
	SourceFeed   = "feed"
)

type CatalogConfig struct {
	Source   string   `toml:"source"`
	Path     string   `toml:"path"` // YAML file or SQLite database
	FeedURLs []string `toml:"feed_urls"`
}

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type CacheConfig struct {
	Backend       string `toml:"backend"`
	TTL           string `toml:"ttl"`
	RedisAddress  string `toml:"redis_address"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisKey      string `toml:"redis_key"`
}

// TTLDuration returns the parsed snapshot TTL. Call after Validate.
func (c CacheConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

type PricingConfig struct {
	Enabled bool  `toml:"enabled"`
	Seed    int64 `toml:"seed"`
	Workers int   `toml:"workers"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 30,
		},
		Auth: AuthConfig{
			APIKeys: []string{"apitest"},
		},
		Catalog: CatalogConfig{
			Source: SourceMemory,
		},
		Cache: CacheConfig{
			Backend:  CacheNone,
			TTL:      "5m",
			RedisKey: "catalog:products",
		},
		Pricing: PricingConfig{
			Enabled: true,
			Seed:    42,
			Workers: 4,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from CONFIG_FILE (if set) and environment variables.
// A .env file in the working directory, if present, seeds variables that are
// not already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getEnvAsInt("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Auth.APIKeys = getEnvAsSlice("API_KEYS", c.Auth.APIKeys)

	c.Catalog.Source = getEnv("CATALOG_SOURCE", c.Catalog.Source)
	c.Catalog.Path = getEnv("CATALOG_PATH", c.Catalog.Path)
	c.Catalog.FeedURLs = getEnvAsSlice("CATALOG_FEED_URLS", c.Catalog.FeedURLs)

	c.Cache.Backend = getEnv("CACHE_BACKEND", c.Cache.Backend)
	c.Cache.TTL = getEnv("CACHE_TTL", c.Cache.TTL)
	c.Cache.RedisAddress = getEnv("REDIS_ADDRESS", c.Cache.RedisAddress)
	c.Cache.RedisPassword = getEnv("REDIS_PASSWORD", c.Cache.RedisPassword)
	c.Cache.RedisDB = getEnvAsInt("REDIS_DB", c.Cache.RedisDB)
	c.Cache.RedisKey = getEnv("REDIS_KEY", c.Cache.RedisKey)

	c.Pricing.Enabled = getEnvAsBool("PRICING_ENABLED", c.Pricing.Enabled)
	c.Pricing.Seed = int64(getEnvAsInt("PRICING_SEED", int(c.Pricing.Seed)))
	c.Pricing.Workers = getEnvAsInt("PRICING_WORKERS", c.Pricing.Workers)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	switch c.Catalog.Source {
	case SourceMemory:
	case SourceYAML, SourceSQLite:
		if c.Catalog.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required for %s catalog source", c.Catalog.Source)
		}
	case SourceFeed:
		if len(c.Catalog.FeedURLs) == 0 {
			return fmt.Errorf("CATALOG_FEED_URLS is required for feed catalog source")
		}
	default:
		return fmt.Errorf("invalid catalog source: %s (must be memory, yaml, sqlite, or feed)", c.Catalog.Source)
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddress == "" {
			return fmt.Errorf("REDIS_ADDRESS is required for redis cache")
		}
	default:
		return fmt.Errorf("invalid cache backend: %s (must be none, memory, or redis)", c.Cache.Backend)
	}
	if ttl, err := time.ParseDuration(c.Cache.TTL); err != nil || ttl <= 0 {
		return fmt.Errorf("invalid cache TTL: %q", c.Cache.TTL)
	}

	if c.Pricing.Workers < 1 {
		return fmt.Errorf("pricing workers must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
