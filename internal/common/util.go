package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const bearerPrefix = "bearer "

// RandomHex returns n random bytes hex-encoded. Token ids use it.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Wipe zeroes a secret read from the terminal once it has been sent.
func Wipe(secret []byte) {
	clear(secret)
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(bearerPrefix):])
	return tok, tok != ""
}

// Bearer formats token as an Authorization value.
func Bearer(token string) string {
	return "Bearer " + token
}
