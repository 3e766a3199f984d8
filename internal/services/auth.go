package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"investorbooking/internal/domain"
)

type authService struct {
	adminEmail   string
	passwordHash string
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewAuthService creates the administrator login service. The administrator
// is configured, not stored: the password is hashed once at construction and
// only the hash is kept.
func NewAuthService(
	adminEmail, adminPassword string,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	tokenExpiry time.Duration,
) (domain.AuthService, error) {
	if adminEmail == "" || adminPassword == "" {
		return nil, fmt.Errorf("administrator credentials are not configured")
	}
	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash administrator password: %w", err)
	}
	return &authService{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: hash,
		hasher:       hasher,
		issuer:       issuer,
		tokenExpiry:  tokenExpiry,
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != s.adminEmail {
		// Compare anyway so an unknown email costs the same as a wrong password.
		_ = s.hasher.Compare(s.passwordHash, password)
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(s.adminEmail, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
