package service

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost  int
	dummy func() []byte
}

// NewPasswordHasher creates a PasswordHasher using the given bcrypt cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	h := &PasswordHasher{cost: cost}
	h.dummy = sync.OnceValue(func() []byte {
		hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
		return hash
	})
	return h
}

// Hash returns a salted bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. The comparison is constant time.
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Burn performs a comparison against a throwaway hash so that a login for an
// unknown email costs the same as one with a wrong password.
func (h *PasswordHasher) Burn(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy(), []byte(password))
}
