package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelToken(t *testing.T) {
	token, err := NewCancelToken()
	require.NoError(t, err)
	assert.Len(t, token, 26)

	// Base32 alphabet only: safe to drop into a URL path unescaped.
	for _, r := range token {
		assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '2' && r <= '7'), "unexpected character %q", r)
	}
}

func TestNewCancelTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewCancelToken()
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
