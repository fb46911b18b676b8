package utils

import (
	"testing"

	"lavellh/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelFromConfig(t *testing.T) {
	orig := config.AppConfig
	defer func() { config.AppConfig = orig }()

	config.AppConfig.Env = "development"
	config.AppConfig.LogLevel = ""
	assert.Equal(t, zapcore.DebugLevel, logLevel())

	config.AppConfig.LogLevel = "warn"
	assert.Equal(t, zapcore.WarnLevel, logLevel())

	config.AppConfig.LogLevel = "error"
	assert.Equal(t, zapcore.ErrorLevel, logLevel())

	config.AppConfig.Env = "production"
	config.AppConfig.LogLevel = ""
	assert.Equal(t, zapcore.InfoLevel, logLevel())

	config.AppConfig.LogLevel = "nonsense"
	assert.Equal(t, zapcore.InfoLevel, logLevel())
}
