package services

import (
	"feedback-board/backend/app/models"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore hashes and checks passwords. Plaintext never leaves it.
type CredentialStore struct{ cost int }

func NewCredentialStore(cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

func (s *CredentialStore) Hash(password string) (string, error) {
	if password == "" {
		return "", models.ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports false for a wrong password or a malformed hash.
func (s *CredentialStore) Verify(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
