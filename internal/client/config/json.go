package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/chatcore/internal/flagx"
	"github.com/dmitrijs2005/chatcore/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the time window either as
// a string like "24h" or as integer nanoseconds. Pointer fields distinguish
// "absent" from "empty" so a partial file only overrides what it names.
type JsonConfig struct {
	DBPath     *string         `json:"db_path"`
	TimeWindow *timex.Duration `json:"time_window"`
	LogBackend *string         `json:"log_backend"`
	LogLevel   *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.TimeWindow != nil {
		cfg.TimeWindow = jc.TimeWindow.Duration
	}
	if jc.LogBackend != nil {
		cfg.LogBackend = *jc.LogBackend
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
