// Package auth implements the credential and token services: Argon2id
// password hashing and HS256 JWT issue/verify.
package auth

import (
	"errors"
	"fmt"
	"time"

	"wacdo/internal/config"
	"wacdo/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by every access token.
type Claims struct {
	Role   model.Role `json:"role"`
	UserID int64      `json:"user_id"`
	jwt.RegisteredClaims
}

// Email returns the token subject.
func (c *Claims) Email() string {
	return c.Subject
}

// TokenService signs and verifies access tokens. It is stateless and safe
// for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Issue signs a token for the user with the configured TTL.
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:   user.Role,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Failures are reported as
// Unauthorized domain errors, distinguishing expiry from everything else.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.UnauthorizedError("token expired")
		}
		return nil, model.UnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, model.UnauthorizedError("invalid token")
	}

	if claims.Subject == "" {
		return nil, model.UnauthorizedError("invalid token: missing subject")
	}

	return claims, nil
}
