package config

import (
	"os"
	"strconv"
	"strings"
)

// UseMockDB switches the reminders API to the in-memory store.
// It is read on every call so a test harness can flip it between requests.
//
// Set via env:
// - USE_MOCK_DB=true
func UseMockDB() bool {
	return boolFromEnv("USE_MOCK_DB")
}

// SkipMigrations disables AutoMigrate on startup.
func SkipMigrations() bool {
	return boolFromEnv("SKIP_MIGRATIONS")
}

// RateLimitEnabled turns on the redis-backed per-IP limiter.
//
// Env:
// - RATE_LIMIT_ENABLED=true
// - RATE_LIMIT_WINDOW_SECONDS=60
// - RATE_LIMIT_MAX_REQUESTS=600
func RateLimitEnabled() bool {
	return boolFromEnv("RATE_LIMIT_ENABLED")
}

func RateLimitMaxRequests() int64 {
	return int64Positive("RATE_LIMIT_MAX_REQUESTS", 600)
}

func RateLimitWindowSeconds() int64 {
	return int64Positive("RATE_LIMIT_WINDOW_SECONDS", 60)
}

// IsProduction is true when GO_ENV=production.
func IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production")
}

// PhoneRegion is the default region used to parse client phone numbers.
func PhoneRegion() string {
	v := strings.ToUpper(strings.TrimSpace(os.Getenv("PHONE_REGION")))
	if v == "" {
		return "US"
	}
	return v
}

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

func int64Positive(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
