// Package config loads runtime configuration for the FinKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally from a .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-m          use the offline mock repository
//	-t int      request timeout (seconds)
//	-d string   local data directory
//	-p          persist the session between runs
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so request_timeout can be either a
// string like "15s" or integer nanoseconds:
//
//	{
//	  "api_url": "https://api.example.com",
//	  "use_api": true,
//	  "request_timeout": "15s",
//	  "data_dir": ".finkeeper",
//	  "persist_session": false,
//	  "log_level": "warn"
//	}
//
// The session secret is best passed through FINKEEPER_SESSION_SECRET rather
// than a file or a flag.
package config
