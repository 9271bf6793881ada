package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu       sync.RWMutex
	instance = zap.NewNop()
)

type ctxKey struct{}

// Init points the global logger at a log file. The terminal belongs to the
// screen driver, so nothing is ever written to stdout or stderr.
func Init(path string, debug bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mu.Lock()
	instance = l
	mu.Unlock()
	return nil
}

// L returns the global logger. It is a no-op logger until Init succeeds.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// Set replaces the global logger (tests use zaptest/observer loggers).
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	instance = l
	mu.Unlock()
}

// NewContext attaches l to ctx.
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or the global one.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return L()
}

// Close flushes buffered entries.
func Close() error {
	return L().Sync()
}
