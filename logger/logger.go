// Package logger wraps zap behind a small application-wide logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the application logger. Init must be called before first use;
// until then it is a no-op logger so tests need no setup.
var L = zap.NewNop()

// Init builds the production JSON logger at the given level and installs
// it as L.
func Init(level string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.Set(level); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	L = built
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = L.Sync()
}
