// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret is the HS256 key bearer tokens are verified with. Required.
	JWTSecret []byte

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MatchDateWindowDays is how many days a discovered trip's start and end
	// may differ from the query's. Defaults to 2.
	MatchDateWindowDays int

	// RateLimitRPS and RateLimitBurst bound requests per client on the
	// matching routes. Default to 5 and 10.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or any
// numeric variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var errs []error
	cfg.MaxBodyBytes = parse(&errs, "MAX_BODY_BYTES", int64(1<<20), func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	cfg.MatchDateWindowDays = parse(&errs, "MATCH_DATE_WINDOW_DAYS", 2, strconv.Atoi)
	cfg.RateLimitRPS = parse(&errs, "RATE_LIMIT_RPS", 5.0, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	cfg.RateLimitBurst = parse(&errs, "RATE_LIMIT_BURST", 10, strconv.Atoi)
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// number covers the numeric settings Load parses.
type number interface {
	~int | ~int64 | ~float64
}

// parse reads key with fn, falling back when unset. Malformed or negative
// values are appended to errs.
func parse[T number](errs *[]error, key string, fallback T, fn func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := fn(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid value %q", key, raw))
		return fallback
	}
	return v
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
