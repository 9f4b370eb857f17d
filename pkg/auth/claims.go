package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
)

// AccessTokenClaims mirrors the identity claims the marketplace backend mints.
// The client never verifies the signature; the server owns token validation and
// the token is treated as opaque on the wire.
type AccessTokenClaims struct {
	UserID   string         `json:"user_id"`
	UserType enums.UserType `json:"user_type"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the token without signature verification so the client
// can read identity and expiry for display and session bookkeeping.
func DecodeClaims(token string) (*AccessTokenClaims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, fmt.Errorf("token is required")
	}

	claims := &AccessTokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(trimmed, claims); err != nil {
		return nil, fmt.Errorf("decoding token claims: %w", err)
	}
	return claims, nil
}

// ExpiresWithin reports whether the token expires before now+window. Tokens
// without an expiry claim never report as expiring.
func (c *AccessTokenClaims) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now.Add(window))
}
