package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/chatcore/internal/flagx"
)

// ValueFlags lists the flags parseFlags and parseJson consume together with
// their following argument. The CLI uses it to find positional arguments.
var ValueFlags = []string{"-c", "-config", "-d", "-w", "-b", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string     path to the local state database
//	-w duration   read-marker time window, e.g. 24h
//	-b string     log backend (slog|zap)
//	-l string     log level (debug|info|warn|error)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-w", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local state database")
	fs.DurationVar(&cfg.TimeWindow, "w", cfg.TimeWindow, "read-marker time window")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
