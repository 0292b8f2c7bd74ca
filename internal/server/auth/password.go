package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the service has always used; raising it
// invalidates nothing but slows new hashes.
const bcryptCost = 10

// HashPassword returns the bcrypt digest of plaintext. The salt is embedded
// in the digest. The plaintext must never be logged.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches digest. A mismatch is a
// plain false, never an error.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
