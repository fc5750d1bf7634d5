package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for all bcrypt hashes
const BcryptCost = 12

// HashPassword hashes a plaintext password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// HashSignature hashes an approval e-signature before it is stored in the
// assignment history. Signatures are never persisted in plaintext.
func HashSignature(signature string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(signature), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
