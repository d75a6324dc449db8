package utils

import (
	"testing"
	"time"

	"festivo/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("sup-1", "a@b.com", time.Hour)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sup-1", id)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("sup-1", "a@b.com", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestSecretFromConfig(t *testing.T) {
	orig := config.AppConfig
	defer func() { config.AppConfig = orig }()

	config.AppConfig.JWTSecret = "config-secret"
	token, err := GenerateToken("sup-1", "a@b.com", time.Hour)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sup-1", id)

	// A token minted under one secret fails validation under another.
	config.AppConfig.JWTSecret = "rotated-secret"
	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
