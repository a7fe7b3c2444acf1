// Package cryptox provides the password hashing primitives used by the
// identity service.
//
// Hashes are produced with bcrypt. The encoded value is self-describing:
// algorithm version, cost and salt all travel inside the hash string, so the
// work factor can be raised over time without invalidating credentials that
// were stored under the old cost.
package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when configuration does not
// override it. Verification stays well under a second on current hardware.
const DefaultCost = 10

// HashPassword hashes plaintext with bcrypt using the given cost. A fresh
// random salt is generated on every call, so hashing the same password twice
// yields two different encoded values.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// The digest comparison is constant-time. A malformed or foreign-format hash
// fails closed: the result is false, never an error into the caller.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
