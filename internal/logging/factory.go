package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a Logger for the named backend writing to w at the given level
// ("debug", "info", "warn", "error").
func New(backend, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case BackendSlog, "":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), nil

	case BackendZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
		return NewZapLogger(zap.New(core)), nil
	}

	return nil, fmt.Errorf("unknown log backend %q", backend)
}
