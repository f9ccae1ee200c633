package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// AdminSubject is the token subject issued to the admin.
const AdminSubject = "admin"

// PasswordAuthenticator checks the admin password against a bcrypt hash.
type PasswordAuthenticator struct {
	hash []byte
}

// NewPasswordAuthenticator creates an authenticator for the given bcrypt
// hash. An empty hash disables authentication.
func NewPasswordAuthenticator(hash string) (*PasswordAuthenticator, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
	}
	return &PasswordAuthenticator{hash: []byte(hash)}, nil
}

// Enabled reports whether an admin password is configured.
func (a *PasswordAuthenticator) Enabled() bool {
	return len(a.hash) > 0
}

// Authenticate compares the password with the configured hash.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, credential string) (string, error) {
	if !a.Enabled() {
		return AdminSubject, nil
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return "", ErrInvalidCredentials
	}
	return AdminSubject, nil
}

// HashPassword returns the bcrypt hash to configure for password.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
