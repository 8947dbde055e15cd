package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultPropertyLockTTL  = "10s"
	defaultPropertyLockWait = "3s"
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultCurrency         = "ARS"
	defaultRedisDB          = "0"
)

var supportedCurrencies = map[string]bool{"ARS": true, "USD": true, "EUR": true}

type Config struct {
	AppEnv           string
	HTTPAddr         string
	DatabaseURL      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	PropertyLockTTL  time.Duration
	PropertyLockWait time.Duration
	LogLevel         string
	LogFormat        string
	DefaultCurrency  string
	AllowedOrigins   []string
}

// UsesRedis reports whether rental writes are serialized through Redis
// rather than an in-process lock.
func (c *Config) UsesRedis() bool {
	return c.RedisAddr != ""
}

// IsPostgres reports whether DatabaseURL points at PostgreSQL.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(getEnv("DEFAULT_CURRENCY", defaultCurrency)))
	cfg.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.RedisDB, err = parseIntEnv("REDIS_DB", defaultRedisDB)
	if err != nil {
		return nil, err
	}

	cfg.PropertyLockTTL, err = parseDurationEnv("PROPERTY_LOCK_TTL", defaultPropertyLockTTL)
	if err != nil {
		return nil, err
	}

	cfg.PropertyLockWait, err = parseDurationEnv("PROPERTY_LOCK_WAIT", defaultPropertyLockWait)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.PropertyLockTTL <= 0 {
		return fmt.Errorf("PROPERTY_LOCK_TTL must be > 0")
	}
	if cfg.PropertyLockWait <= 0 {
		return fmt.Errorf("PROPERTY_LOCK_WAIT must be > 0")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	if !supportedCurrencies[cfg.DefaultCurrency] {
		return fmt.Errorf("DEFAULT_CURRENCY %q is not supported", cfg.DefaultCurrency)
	}
	if cfg.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}

	// redis locks expire after PROPERTY_LOCK_TTL; only the postgres exclusion
	// constraint still rejects overlaps once a lock has lapsed
	if cfg.UsesRedis() && !cfg.IsPostgres() {
		return fmt.Errorf("REDIS_ADDR requires DATABASE_URL to point at PostgreSQL")
	}
	if isProdLike(cfg.AppEnv) && !cfg.IsPostgres() {
		return fmt.Errorf("in prod/release DATABASE_URL must point at PostgreSQL")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
