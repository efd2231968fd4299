package utils

import (
	"testing"
	"time"

	"bookwell/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("staff-1", "tenant-1", time.Hour)
	require.NoError(t, err)

	staffID, tenantID, err := ClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", staffID)
	assert.Equal(t, "tenant-1", tenantID)
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("staff-1", "tenant-1", -time.Minute)
	require.NoError(t, err)

	_, _, err = ClaimsFromToken(token)
	assert.Error(t, err)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("staff-1", "tenant-1", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "rotated-secret"
	_, _, err = ClaimsFromToken(token)
	assert.Error(t, err)
}
