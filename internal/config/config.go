package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the pantry service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Matching MatchingConfig
}

type ServerConfig struct {
	Addr               string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

type LoggingConfig struct {
	Level string
}

type AuthConfig struct {
	Session SessionConfig
}

type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// CacheConfig selects the recipe id-set cache. An empty RedisAddr keeps the
// cache in process memory.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// Matching strategies for recipe listings.
const (
	StrategyReference = "reference"
	StrategyFast      = "fast"
)

type MatchingConfig struct {
	Strategy    string
	Concurrency int
}

// Load reads configuration from the environment, after applying a .env file
// from the working directory when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	databaseURL := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL"))

	cfg := Config{
		Server: ServerConfig{
			Addr:               firstNonEmpty(os.Getenv("SERVER_ADDR"), os.Getenv("ADDR"), ":8080"),
			CORSAllowedOrigins: splitList(firstNonEmpty(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		},
		Database: DatabaseConfig{
			URL:             databaseURL,
			MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 5),
			MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 20),
			ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 30*time.Minute),
			ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 5*time.Minute),
			UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), strings.TrimSpace(databaseURL) == ""),
		},
		Logging: LoggingConfig{
			Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		},
		Auth: AuthConfig{
			Session: SessionConfig{
				Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
				CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "demeter_session"),
				CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
				CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
			},
		},
		Cache: CacheConfig{
			RedisAddr:     strings.TrimSpace(os.Getenv("CACHE_REDIS_ADDR")),
			RedisPassword: os.Getenv("CACHE_REDIS_PASSWORD"),
			RedisDB:       parseIntWithDefault(os.Getenv("CACHE_REDIS_DB"), 0),
			TTL:           parseDurationWithDefault(os.Getenv("CACHE_TTL"), 5*time.Minute),
		},
		Matching: MatchingConfig{
			Strategy:    strings.ToLower(firstNonEmpty(os.Getenv("MATCHING_STRATEGY"), StrategyReference)),
			Concurrency: parseIntWithDefault(os.Getenv("MATCHING_CONCURRENCY"), 4),
		},
	}

	switch cfg.Matching.Strategy {
	case StrategyReference, StrategyFast:
	default:
		return Config{}, fmt.Errorf("unknown matching strategy: %s", cfg.Matching.Strategy)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
