// Package cryptox holds the password hashing primitives used by the
// credential store. Hashes are salted bcrypt digests.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor the Evento accounts were created with.
const DefaultCost = 10

// ErrMismatch is returned by ComparePassword when the password does not
// match the stored hash.
var ErrMismatch = errors.New("password mismatch")

// generateFromPassword is a seam for tests that need a failing hasher.
var generateFromPassword = bcrypt.GenerateFromPassword

// HashPassword returns a salted bcrypt hash of raw using cost. A cost below
// bcrypt.MinCost falls back to DefaultCost.
func HashPassword(raw string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	hash, err := generateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks raw against hash. It returns ErrMismatch on a wrong
// password and the underlying bcrypt error for a malformed hash.
func ComparePassword(hash, raw string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
