package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger for the given level name ("debug", "info",
// "warn", "error"). Callers derive per-component loggers from it with
// Named rather than constructing new roots, so every log line carries a
// consistent "component" breadcrumb.
func New(level string) (*zap.Logger, error) {
	atomicLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: unknown level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Named returns a child logger tagged with component, identifying where a
// log line originated (coldbd's own loggers are named "main" and
// "session").
func Named(base *zap.Logger, component string) *zap.Logger {
	return base.Named(component)
}
