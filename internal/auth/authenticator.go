// Package auth handles admin login and session tokens.
package auth

import (
	"context"
)

// RoleAdmin is the role granted to a successful admin login.
const RoleAdmin = "admin"

// Authenticator verifies a login credential.
// This abstraction allows swapping the password check for another method
// without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the credential and returns the subject it
	// belongs to. Returns ErrInvalidCredentials if it does not match.
	Authenticate(ctx context.Context, credential string) (string, error)

	// Enabled reports whether a credential has been configured. When it
	// has not, admin procedures are open.
	Enabled() bool
}
