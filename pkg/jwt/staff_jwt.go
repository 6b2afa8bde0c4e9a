package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned by Parse for a well-signed token past its expiry
var ErrTokenExpired = jwt.ErrTokenExpired

// StaffClaims are the claims carried by staff session tokens
type StaffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// StaffTokenService signs and validates staff session tokens with HS256
type StaffTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewStaffTokenService creates a new StaffTokenService
func NewStaffTokenService(secret string, ttl time.Duration) (*StaffTokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is not configured")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &StaffTokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for subject with role, valid from now for the configured TTL
func (s *StaffTokenService) Issue(subject, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	claims := StaffClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates a token and returns its claims
func (s *StaffTokenService) Parse(tokenString string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
