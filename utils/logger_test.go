package utils

import (
	"testing"

	"festivo/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelFromConfig(t *testing.T) {
	orig := config.AppConfig
	defer func() { config.AppConfig = orig }()

	config.AppConfig.LogLevel = "warn"
	assert.Equal(t, zapcore.WarnLevel, logLevel())

	// An unparsable level falls back on the environment default.
	config.AppConfig.LogLevel = "shouty"
	config.AppConfig.Env = "production"
	assert.Equal(t, zapcore.InfoLevel, logLevel())

	config.AppConfig.LogLevel = ""
	config.AppConfig.Env = "development"
	assert.Equal(t, zapcore.DebugLevel, logLevel())
}

func TestGetLoggerInitialisesOnce(t *testing.T) {
	first := GetLogger()
	require.NotNil(t, first)
	assert.Same(t, first, GetLogger())
}
