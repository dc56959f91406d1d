package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/common"
)

const metaKeyOptionPrefix = "option:"

// OptionService holds user options. Values set here are persisted as JSON
// and restored by Load.
type OptionService interface {
	Get() models.Options
	TimeWindow() time.Duration
	Set(ctx context.Context, key string, value any) error
	SetAll(ctx context.Context, opts models.Options) error
	Load(ctx context.Context) error
}

type optionService struct {
	e *Engine
}

func newOptionService(e *Engine) OptionService {
	return &optionService{e: e}
}

func (s *optionService) Get() models.Options {
	var out models.Options
	s.e.view(func() { out = s.e.options.Clone() })
	return out
}

// TimeWindow is the read-marker window currently in force.
func (s *optionService) TimeWindow() time.Duration {
	var d time.Duration
	s.e.view(func() { d = s.e.timeWindowLocked() })
	return d
}

// Set stores one option and emits options-changed. timeWindow must be a
// non-negative whole number of milliseconds (a time.Duration is converted).
func (s *optionService) Set(ctx context.Context, key string, value any) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", common.ErrInvalidOption)
	}

	if key == models.OptionTimeWindow {
		ms, ok := models.Options{key: value}.Int64(key)
		if !ok || ms < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number of milliseconds", common.ErrInvalidOption, key)
		}
		value = ms
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrInvalidOption, key, err)
	}

	if err := s.e.repos.Metadata.Set(ctx, metaKeyOptionPrefix+key, data); err != nil {
		return fmt.Errorf("failed to persist option %s: %w", key, err)
	}

	s.e.update(func() {
		s.e.options[key] = value
		s.e.emitLocked(events.OptionsChanged, s.e.options.Clone())
	})
	return nil
}

// SetAll sets every option in opts, in key order. It keeps going past
// failures and returns them joined.
func (s *optionService) SetAll(ctx context.Context, opts models.Options) error {
	var errs []error
	for _, k := range slices.Sorted(maps.Keys(opts)) {
		if err := s.Set(ctx, k, opts[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load overlays persisted options on the current ones and emits
// options-changed.
func (s *optionService) Load(ctx context.Context) error {
	stored, err := s.e.repos.Metadata.ListPrefix(ctx, metaKeyOptionPrefix)
	if err != nil {
		return fmt.Errorf("failed to load options: %w", err)
	}

	loaded := make(models.Options, len(stored))
	for k, raw := range stored {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil {
			s.e.log.Warn(ctx, "skipping unreadable option", "key", k, "error", err)
			continue
		}
		loaded[k] = v
	}

	s.e.update(func() {
		maps.Copy(s.e.options, loaded)
		s.e.emitLocked(events.OptionsChanged, s.e.options.Clone())
	})
	return nil
}

func (e *Engine) timeWindowLocked() time.Duration {
	if _, ok := e.options.Int64(models.OptionTimeWindow); !ok {
		return DefaultTimeWindow
	}
	return e.options.TimeWindow()
}
