package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "FINKEEPER_API_URL"
	EnvUseAPI         = "FINKEEPER_USE_API"
	EnvRequestTimeout = "FINKEEPER_REQUEST_TIMEOUT"
	EnvDataDir        = "FINKEEPER_DATA_DIR"
	EnvPersistSession = "FINKEEPER_PERSIST_SESSION"
	EnvSessionSecret  = "FINKEEPER_SESSION_SECRET"
	EnvLogLevel       = "FINKEEPER_LOG_LEVEL"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first if present; variables already set in
// the process environment win over it.
//
// FINKEEPER_REQUEST_TIMEOUT accepts a duration ("10s") or whole seconds.
// Panics on malformed booleans or durations, like the other loaders.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(EnvAPIURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvUseAPI); ok {
		cfg.UseAPI = mustBool(EnvUseAPI, v)
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		cfg.RequestTimeout = mustDuration(EnvRequestTimeout, v)
	}
	if v, ok := os.LookupEnv(EnvDataDir); ok {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvPersistSession); ok {
		cfg.PersistSession = mustBool(EnvPersistSession, v)
	}
	if v, ok := os.LookupEnv(EnvSessionSecret); ok {
		cfg.SessionSecret = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
}

func mustBool(key, v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return b
}

func mustDuration(key, v string) time.Duration {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return d
}
