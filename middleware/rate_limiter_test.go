package middleware

import (
	"testing"

	"festivo/config"

	"github.com/stretchr/testify/assert"
)

func TestGetLimiterUsesConfiguredBudget(t *testing.T) {
	orig := config.AppConfig
	defer func() { config.AppConfig = orig }()
	config.AppConfig.MaxRequestsPerMin = 2

	limiter := limiterStore.getLimiter("198.51.100.7")
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow(), "burst above the configured budget is rejected")
}

func TestRequestsPerMinuteFallback(t *testing.T) {
	orig := config.AppConfig
	defer func() { config.AppConfig = orig }()

	config.AppConfig.MaxRequestsPerMin = 0
	assert.Equal(t, 100, requestsPerMinute())

	config.AppConfig.MaxRequestsPerMin = 250
	assert.Equal(t, 250, requestsPerMinute())
}
