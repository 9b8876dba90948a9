// Package logger builds zap loggers from YAML configuration.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFormat selects the zap encoder.
type LogFormat string

const (
	ColorizedOutput LogFormat = "color"
	PlaintextOutput LogFormat = "plaintext"
	JSONOutput      LogFormat = "json"
)

// Config describes the logger built by Build. Format defaults to
// ColorizedOutput and DefaultLevel to the zap preset's level.
type Config struct {
	Production   bool      `yaml:"production"`
	DefaultLevel string    `yaml:"defaultLevel"`
	Format       LogFormat `yaml:"format"`
}

// Build creates a zap logger from the config. An empty config yields a
// colorized development logger at debug level.
func (l Config) Build() (*zap.Logger, error) {
	var conf zap.Config
	if l.Production {
		conf = zap.NewProductionConfig()
	} else {
		conf = zap.NewDevelopmentConfig()
	}
	encConfig := conf.EncoderConfig
	switch l.Format {
	case PlaintextOutput:
		encConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		conf.Encoding = "console"
	case JSONOutput:
		encConfig.MessageKey = "msg"
		encConfig.TimeKey = "ts"
		encConfig.LevelKey = "level"
		encConfig.NameKey = "logger"
		encConfig.CallerKey = "caller"
		encConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		conf.Encoding = "json"
	case ColorizedOutput, "":
		conf.Encoding = "console"
		encConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", l.Format)
	}
	conf.EncoderConfig = encConfig

	if l.DefaultLevel != "" {
		level, err := zap.ParseAtomicLevel(l.DefaultLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		conf.Level = level
	}
	return conf.Build()
}
