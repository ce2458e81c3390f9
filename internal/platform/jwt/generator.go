// Package jwtmw provides JWT issuance, verification, and the Gin authentication
// middleware built on top of them.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window for issued tokens.
// Tokens are not revocable before expiry; there is no server-side blacklist.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrTokenExpired is returned when a token's signature is valid but its
	// validity window has lapsed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned for any other verification failure:
	// signature mismatch, unexpected signing algorithm, or malformed input.
	ErrTokenInvalid = errors.New("invalid token")
)

// Generator issues and verifies signed bearer tokens for user identities.
// The signing secret is process-wide state loaded once at construction and
// never rotated at runtime.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
// A non-positive expiration falls back to DefaultTokenTTL.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	if expiration <= 0 {
		expiration = DefaultTokenTTL
	}
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed HS256 token binding the given user identity.
// Claims: sub (user id), iat (issued at), exp (issued at + TTL).
func (g *Generator) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies signature and expiry and returns the embedded user ID.
// Verification is a pure function of (token, secret, current time); no store
// lookup happens here. Expired tokens yield ErrTokenExpired, everything else
// that fails yields ErrTokenInvalid.
func (g *Generator) ParseToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// 署名アルゴリズムを確認（HMAC以外は拒否）
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub < 0 {
		return 0, ErrTokenInvalid
	}

	return uint(sub), nil
}
