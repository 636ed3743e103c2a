package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/msomdec/task-tracker/internal/domain"
)

// AuthService handles user registration, sign-in, and token verification.
type AuthService struct {
	users  domain.UserRepository
	tokens *TokenIssuer
	hasher *PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, tokens *TokenIssuer, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates a new user account after validating inputs.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := checkLength("name", name, 3, 50); err != nil {
		return nil, err
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	if err := checkLength("password", password, 6, 50); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// SignIn verifies credentials and returns a signed access token.
// Unknown emails and wrong passwords fail with the same error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Burn(password)
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// Authenticate verifies a bearer token and returns the identity it carries.
func (s *AuthService) Authenticate(token string) (domain.Identity, error) {
	return s.tokens.Verify(token)
}

// checkLength validates that value has between min and max characters.
func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return fmt.Errorf("%w: %s must be between %d and %d characters", domain.ErrInvalidInput, field, min, max)
	}
	return nil
}
