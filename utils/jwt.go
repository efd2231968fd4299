package utils

import (
	"errors"
	"time"

	"bookwell/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT for a staff console login. The
// tenant claim scopes every request the token authorizes.
func GenerateToken(staffID, tenantID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":    staffID,
		"tenant": tenantID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ClaimsFromToken extracts the staff ID and tenant ID from a valid token.
func ClaimsFromToken(tokenString string) (staffID, tenantID string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	staffID, ok = claims["sub"].(string)
	if !ok || staffID == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	tenantID, ok = claims["tenant"].(string)
	if !ok || tenantID == "" {
		return "", "", errors.New("token does not contain a valid 'tenant' claim")
	}
	return staffID, tenantID, nil
}
