package config

import (
	"errors"
	"fmt"
	"time"
)

// minSecretLength is the shortest JWT secret accepted for HS256 signing.
const minSecretLength = 32

// AuthConfig controls the opt-in admin guard of the articles API.
type AuthConfig struct {
	Enabled       bool
	JWTSecret     string
	AdminUser     string
	AdminPassword string
	TokenTTL      time.Duration
}

// LoadAuthConfig reads ADMIN_AUTH_ENABLED, JWT_SECRET, ADMIN_USER,
// ADMIN_USER_PASSWORD and JWT_TTL.
func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		Enabled:       GetEnvBool("ADMIN_AUTH_ENABLED", false),
		JWTSecret:     GetEnvString("JWT_SECRET", ""),
		AdminUser:     GetEnvString("ADMIN_USER", ""),
		AdminPassword: GetEnvString("ADMIN_USER_PASSWORD", ""),
		TokenTTL:      GetEnvDuration("JWT_TTL", time.Hour),
	}
}

// Validate reports a misconfiguration. A disabled guard is always valid.
func (c AuthConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength))
	}
	if c.AdminUser == "" {
		errs = append(errs, errors.New("ADMIN_USER must not be empty"))
	}
	if c.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_USER_PASSWORD must not be empty"))
	}
	if err := ValidatePositiveDuration(c.TokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("JWT_TTL: %w", err))
	}
	return errors.Join(errs...)
}
