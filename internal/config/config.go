package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Restaurant  RestaurantConfig
	Geocode     GeocodeConfig
	Cache       CacheConfig
	Session     SessionConfig
	Audit       AuditConfig
	LogLevel    string
}

// DatabaseConfig is optional. Without a host, audit events are kept in memory.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a postgres database is configured
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type RestaurantConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GeocodeConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	RedisAddr string
	MenuTTL   time.Duration
}

type AuditConfig struct {
	// Key for hashing phone numbers in audit events, at most 64 bytes
	PhoneHashKey string
}

type SessionConfig struct {
	IdleTimeout time.Duration
	// Address lookups allowed per second per session, and burst
	LookupRate  float64
	LookupBurst int
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	httpTimeout, err := getDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	menuTTL, err := getDuration("MENU_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	lookupRate, err := strconv.ParseFloat(getEnvOrViper("LOOKUP_RATE", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_RATE: %w", err)
	}
	lookupBurst, err := strconv.Atoi(getEnvOrViper("LOOKUP_BURST", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_BURST: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", ""),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "fastpizza"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Restaurant: RestaurantConfig{
			BaseURL: getEnvOrViper("RESTAURANT_API_URL", "https://react-fast-pizza-api.onrender.com/api"),
			Timeout: httpTimeout,
		},
		Geocode: GeocodeConfig{
			BaseURL: getEnvOrViper("GEOCODE_API_URL", "https://api.bigdatacloud.net"),
			Timeout: httpTimeout,
		},
		Cache: CacheConfig{
			RedisAddr: getEnvOrViper("REDIS_ADDR", ""),
			MenuTTL:   menuTTL,
		},
		Session: SessionConfig{
			IdleTimeout: idleTimeout,
			LookupRate:  lookupRate,
			LookupBurst: lookupBurst,
		},
		Audit: AuditConfig{
			PhoneHashKey: getEnvOrViper("AUDIT_PHONE_HASH_KEY", "default-key-change-in-production"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Restaurant.BaseURL == "" {
		return nil, fmt.Errorf("RESTAURANT_API_URL is required")
	}
	if len(cfg.Audit.PhoneHashKey) > 64 {
		return nil, fmt.Errorf("AUDIT_PHONE_HASH_KEY must be at most 64 bytes")
	}
	if cfg.Session.LookupBurst < 1 {
		return nil, fmt.Errorf("LOOKUP_BURST must be at least 1")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
