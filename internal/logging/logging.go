// Package logging builds the module's single *zap.Logger, shared by the
// session store, the audit sink, and the CLI (SPEC_FULL.md §10.1).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger, downgraded to debug level when
// verbose is set. Callers own the returned logger and must Sync it before
// exit.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}
