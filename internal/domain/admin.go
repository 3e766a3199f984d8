package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned when an administrator login fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenIssuer signs administrator tokens.
type TokenIssuer interface {
	Issue(email string, expiry time.Duration) (string, error)
}

// TokenVerifier validates an administrator token and returns the subject email.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PasswordHasher hashes and compares administrator passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AuthService answers the single authorization question this system has:
// is the caller the administrator. Identity is configured, not stored.
type AuthService interface {
	// Login checks the credentials against the configured administrator and
	// returns a signed bearer token. Returns ErrInvalidCredentials on mismatch.
	Login(ctx context.Context, email, password string) (string, error)
}
