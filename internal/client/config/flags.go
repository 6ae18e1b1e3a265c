package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST backend
//	-m          use the offline mock instead of the backend
//	-t int      request timeout (in seconds)
//	-d string   local data directory
//	-p          persist the session between runs
//	-l string   log level (debug, info, warn, error)
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// components do not cause errors here. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l"}, "-m", "-p")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	useMock := fs.Bool("m", !cfg.UseAPI, "use the offline mock repository")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	fs.BoolVar(&cfg.PersistSession, "p", cfg.PersistSession, "persist the session between runs")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.UseAPI = !*useMock
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
