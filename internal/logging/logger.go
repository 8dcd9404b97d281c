// Package logging builds the shared logger used by the CLI and the
// extraction pipeline. Extraction failures are logged and skipped, so
// the logger is the only place those events surface.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a sugared logger writing to stderr. When verbose is
// false only warnings and errors are emitted.
func New(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything. Used by tests and as
// a default when callers pass nil.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
