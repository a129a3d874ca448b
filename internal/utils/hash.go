package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// passwordSalt is appended to every password before hashing. Fixed across
// deployments so seeded credentials keep working after a restore.
const passwordSalt = "alhudha_secure_salt_2024"

// HashPassword returns the base64 SHA-256 digest of password+salt.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + passwordSalt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword compares in constant time.
func VerifyPassword(password, storedHash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
