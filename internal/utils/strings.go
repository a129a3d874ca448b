package utils

import (
	"strings"

	"github.com/google/uuid"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// RandomHex returns n hex characters of fresh randomness (n <= 32).
func RandomHex(n int) string {
	h := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// NewSessionToken returns an opaque token for the cookie value. Identity is
// never embedded in it; the session store owns the mapping.
func NewSessionToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
