// Package logging builds the zap loggers used by the host tools.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"blinky/core"
)

// NewLogger returns a console logger writing to stderr.
// verbose lowers the level from info to debug.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("create zap logger: %w", err)
	}

	return logger.Sugar(), nil
}

// CoreWriter adapts a logger to the firmware core's debug writer.
// Event lines and debug messages are logged at info level.
func CoreWriter(logger *zap.SugaredLogger) core.DebugWriter {
	return func(msg string) {
		logger.Info(msg)
	}
}
