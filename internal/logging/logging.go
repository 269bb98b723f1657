// Package logging builds the zap loggers used by the binaries.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger, or a coloured console logger when dev is set.
func New(dev bool) (*zap.Logger, error) {
	if !dev {
		return zap.NewProduction()
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return config.Build()
}

// Must is like New but panics on error.
func Must(dev bool) *zap.Logger {
	return zap.Must(New(dev))
}
