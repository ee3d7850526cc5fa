// Package auth issues and verifies the admin tokens of the articles API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role that may call admin actions.
const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("admin role required")
)

// Credentials is a username/password pair presented at login.
type Credentials struct {
	Username string
	Password string
}

// Provider checks credentials and maps a user to a role.
type Provider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	IdentifyUser(ctx context.Context, username string) (string, error)
	Name() string
}

// Claims is what a verified token says about its bearer.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// AuthService signs HS256 tokens for authenticated users.
type AuthService struct {
	provider Provider
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(provider Provider, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		provider: provider,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Provider returns the credential backend, used for logging.
func (s *AuthService) Provider() Provider {
	return s.provider
}

// Login validates creds and returns a signed token with its expiry.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (string, time.Time, error) {
	if creds.Username == "" || creds.Password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.provider.ValidateCredentials(ctx, creds); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	role, err := s.provider.IdentifyUser(ctx, creds.Username)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	exp := s.now().Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  creds.Username,
		"role": role,
		"iat":  s.now().Unix(),
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses an HS256 token and requires the admin role.
func (s *AuthService) Verify(tokenString string) (Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{Subject: sub, Role: role, ExpiresAt: exp.Time}
	if role != RoleAdmin {
		return claims, ErrForbidden
	}
	return claims, nil
}
