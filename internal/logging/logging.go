// Package logging builds the zap loggers used across the biaslens core.
//
// The core is a library: it never installs a global logger. Every service
// constructor accepts a *zap.Logger and substitutes zap.NewNop() when
// handed nil, so embedding processes control the sink and the core stays
// silent by default.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/biaslens/internal/config"
)

// New constructs a logger from the given configuration.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "console":
		zc.Encoding = "console"
	case "json", "":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// OrNop returns logger, or a no-op logger when nil. Service constructors
// use this so a nil logger is always safe.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
