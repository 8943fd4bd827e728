package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptEncrypter hashes and compares passwords with bcrypt.
type BcryptEncrypter struct {
	cost int
}

// NewBcryptEncrypter builds an encrypter with the given cost, falling back to
// bcrypt.DefaultCost for out-of-range values.
func NewBcryptEncrypter(cost int) *BcryptEncrypter {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncrypter{cost: cost}
}

// Hash derives a bcrypt hash from the plaintext password.
func (e *BcryptEncrypter) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), e.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether the plaintext password matches the stored hash.
func (e *BcryptEncrypter) Compare(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
