// Package token issues and verifies the signed, time-limited bearer tokens
// that authenticate requests against the user endpoints.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds configuration for the token service.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string

	// SigningMethod is the JWT signing algorithm (HS256, HS384 or HS512).
	SigningMethod string

	// TTL is the lifetime of issued tokens.
	TTL time.Duration

	// ClockSkew allows for clock differences between servers.
	ClockSkew time.Duration
}

// Claims is the JWT claims structure carried by issued tokens. The subject
// claim holds the authenticated username.
type Claims struct {
	jwt.RegisteredClaims
}

// Service issues and verifies bearer tokens. The secret is fixed at
// construction and read-only thereafter.
type Service struct {
	config *Config

	// jwtSigningMethod is the resolved JWT signing method.
	jwtSigningMethod jwt.SigningMethod

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a new token service.
func NewService(cfg *Config) *Service {
	svc := &Service{
		config: cfg,
		now:    time.Now,
	}

	switch cfg.SigningMethod {
	case "HS384":
		svc.jwtSigningMethod = jwt.SigningMethodHS384
	case "HS512":
		svc.jwtSigningMethod = jwt.SigningMethodHS512
	default:
		svc.jwtSigningMethod = jwt.SigningMethodHS256
	}

	return svc
}

// Issue creates a signed token for the given subject. It returns the token
// string and its absolute expiry.
func (s *Service) Issue(subject string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.TTL)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(s.jwtSigningMethod, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify validates the signature and expiry of a token string and returns
// its subject. Failures are reported through the package sentinel errors.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalidSig
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithLeeway(s.config.ClockSkew), jwt.WithTimeFunc(s.now))

	if err != nil {
		return "", mapJWTError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}

	return claims.Subject, nil
}

// mapJWTError maps JWT library errors to our error types.
func mapJWTError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	if errors.Is(err, jwt.ErrTokenNotValidYet) {
		return ErrTokenNotYetValid
	}
	if errors.Is(err, jwt.ErrTokenMalformed) {
		return ErrTokenMalformed
	}
	if errors.Is(err, jwt.ErrSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) {
		return ErrTokenInvalidSig
	}

	return ErrTokenMalformed
}
