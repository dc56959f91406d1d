package models

import (
	"encoding/json"
	"maps"
	"time"
)

// OptionTimeWindow is the option holding the read-marker window in
// milliseconds.
const OptionTimeWindow = "timeWindow"

// Options is the user-configurable option map. Values are plain JSON data.
type Options map[string]any

func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// Int64 reads key as an integer, accepting the numeric shapes produced by Go
// callers and by JSON decoding.
func (o Options) Int64(key string) (int64, bool) {
	switch v := o[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case time.Duration:
		return v.Milliseconds(), true
	}
	return 0, false
}

// TimeWindow returns the timeWindow option as a duration, or 0 when unset.
func (o Options) TimeWindow() time.Duration {
	ms, ok := o.Int64(OptionTimeWindow)
	if !ok {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
