package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrMalformedToken = errors.New("malformed token")

// TokenClaims are the claims the sweets API embeds in the tokens it issues
type TokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeToken extracts the claims from a remote-issued token without
// verifying its signature. The sweets API is the authority on the token; the
// frontend only needs the claims to recover expiry and role for navigation
// gating, and every protected call is re-validated server side.
func DecodeToken(tokenString string) (*TokenClaims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, &TokenClaims{})
	if err != nil {
		return nil, ErrMalformedToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	return claims, nil
}

// ExpiryOrDefault returns the token expiry, or now+fallback when the token
// carries no exp claim
func (c *TokenClaims) ExpiryOrDefault(fallback time.Duration) time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Now().Add(fallback)
}
