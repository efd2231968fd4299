package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// NewCancelToken generates an unguessable, URL-safe token granting
// self-service cancellation for a single booking. It returns a base32
// encoded string (without padding) of 26 characters (~130 bits).
func NewCancelToken() (string, error) {
	randomBytes := make([]byte, 17)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	return token[:26], nil
}
