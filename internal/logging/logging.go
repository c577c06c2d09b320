// Package logging builds the zap logger shared by every eduval command.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select level, encoding and destination.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	File   string // empty means stderr
}

// New builds a logger from opts. Unknown levels fall back to info.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(opts.Format) {
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	cfg.DisableStacktrace = true

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	return cfg.Build()
}

// ForTerminal returns a logger that never writes to the terminal: the
// configured file when one is set, otherwise a no-op logger.
func ForTerminal(opts Options) (*zap.Logger, error) {
	if opts.File == "" {
		return zap.NewNop(), nil
	}
	return New(opts)
}

// ParseLevel maps a level name to a zapcore.Level.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
