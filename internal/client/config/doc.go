// Package config loads runtime configuration for the chat engine CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string     path to the local state database
//	-w duration   read-marker time window
//	-b string     log backend (slog|zap)
//	-l string     log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the window, so values can be either
// strings like "24h" or integer nanoseconds. Keys left out keep their
// previous value:
//
//	{
//	  "db_path": "/var/lib/chat/state.db",
//	  "time_window": "168h",
//	  "log_backend": "zap",
//	  "log_level": "debug"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
