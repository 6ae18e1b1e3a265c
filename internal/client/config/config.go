package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the FinKeeper CLI.
//
// Units: RequestTimeout is a time.Duration applied to every HTTP request.
type Config struct {
	APIBaseURL     string
	UseAPI         bool
	RequestTimeout time.Duration
	DataDir        string
	PersistSession bool
	SessionSecret  string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.UseAPI = true
	c.RequestTimeout = 15 * time.Second
	c.DataDir = ".finkeeper"
	c.PersistSession = false
	c.SessionSecret = ""
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file), JSON (if -c/-config is given) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
