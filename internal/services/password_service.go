package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBCryptCost factor 12 required by PCI DSS v4.0 for financial data protection
	DefaultBCryptCost = 12

	MaxCredentialLength = 72 // Bcrypt algorithm limitation
)

var (
	ErrCredentialEmpty   = errors.New("credential cannot be empty")
	ErrCredentialTooLong = fmt.Errorf("credential must not exceed %d characters", MaxCredentialLength)
)

// PasswordService handles credential hashing and comparison
type PasswordService struct {
	cost int
}

// NewPasswordService creates a password service with the given bcrypt cost;
// costs outside the bcrypt range fall back to the default.
func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBCryptCost
	}
	return &PasswordService{cost: cost}
}

// HashCredential validates and hashes a credential using bcrypt
func (ps *PasswordService) HashCredential(credential string) (string, error) {
	if credential == "" {
		return "", ErrCredentialEmpty
	}

	if len(credential) > MaxCredentialLength {
		return "", ErrCredentialTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(credential), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}

	return string(hashedBytes), nil
}

// CompareCredential compares a plain credential with a stored hash.
// Returns true if they match, false otherwise
func (ps *PasswordService) CompareCredential(credential, hash string) bool {
	// bcrypt.CompareHashAndPassword provides timing-attack resistance per OWASP guidelines
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential))
	return err == nil
}
