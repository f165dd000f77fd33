// Package auth provides the credential and token primitives: bcrypt
// password hashing and HMAC-signed bearer tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher defines the interface for hashing and comparing passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of the password. Two calls with
	// the same input produce different hashes that both verify.
	Hash(password string) (string, error)

	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (mismatch or malformed hash).
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new BcryptHasher with the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare implements the PasswordHasher interface using bcrypt.
// A malformed hash is reported as an error, never a panic.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
