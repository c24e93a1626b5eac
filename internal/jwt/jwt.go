// Package jwt issues and validates the stateless bearer tokens that identify a user.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Claims represents the custom JWT claims for a user session.
type Claims struct {
	UserID string `json:"user_id"`
	gojwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// Option configures a JWTService.
type Option func(*JWTService)

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

// NewJWTService creates a JWT service signing with secretKey. A non-positive ttl falls back to DefaultTTL.
func NewJWTService(secretKey string, ttl time.Duration, opts ...Option) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateToken creates a signed token for userID that expires ttl after now.
func (s *JWTService) GenerateToken(userID string) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies the signature and expiry of tokenString and returns its claims.
// The signature is checked first, so a forged token is reported as invalid even when it is also expired.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *gojwt.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
