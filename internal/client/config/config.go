package config

import (
	"time"

	"github.com/dmitrijs2005/chatcore/internal/logging"
)

// Config holds runtime settings for the chat engine and its CLI.
//
// Fields:
//   - DBPath: location of the local SQLite state database.
//   - TimeWindow: how long a message stays relevant; read markers expire
//     TimeWindow after the message's timestamp.
//   - LogBackend: "slog" or "zap".
//   - LogLevel: "debug", "info", "warn" or "error".
type Config struct {
	DBPath     string
	TimeWindow time.Duration
	LogBackend string
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "chat.db"
	c.TimeWindow = 7 * 24 * time.Hour
	c.LogBackend = logging.BackendSlog
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
