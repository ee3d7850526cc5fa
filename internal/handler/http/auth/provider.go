// Package auth guards the admin actions of the articles API with bearer
// tokens and serves the login endpoint that issues them.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	authservice "news-agency/internal/service/auth"
)

// BasicAuthProvider accepts exactly one configured admin account.
type BasicAuthProvider struct {
	user     string
	password string
}

func NewBasicAuthProvider(user, password string) *BasicAuthProvider {
	return &BasicAuthProvider{user: user, password: password}
}

func (p *BasicAuthProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	if p.user == "" || p.password == "" {
		return errors.New("admin account is not configured")
	}
	// タイミング攻撃対策で定数時間比較
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(p.user)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(p.password)) == 1
	if !userMatch || !passMatch {
		return errors.New("username or password mismatch")
	}
	return nil
}

func (p *BasicAuthProvider) IdentifyUser(_ context.Context, username string) (string, error) {
	if username != "" && subtle.ConstantTimeCompare([]byte(username), []byte(p.user)) == 1 {
		return authservice.RoleAdmin, nil
	}
	return "", errors.New("user not found")
}

func (p *BasicAuthProvider) Name() string {
	return "basic"
}
