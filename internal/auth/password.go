package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	hashRounds = 10000
	hashBytes  = 64
)

// HashPassword derives a salt:digest credential from a plaintext password.
// The salt is fresh per call, so hashing the same password twice yields two
// different digests that both verify.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)
	digest := pbkdf2.Key([]byte(password), []byte(saltHex), hashRounds, hashBytes, sha512.New)
	return saltHex + ":" + hex.EncodeToString(digest), nil
}

// VerifyPassword checks a password against a stored salt:digest value. A
// malformed stored value verifies false; this never returns an error.
func VerifyPassword(password, stored string) bool {
	salt, want, found := strings.Cut(stored, ":")
	if !found || salt == "" || want == "" {
		return false
	}
	digest := pbkdf2.Key([]byte(password), []byte(salt), hashRounds, hashBytes, sha512.New)
	got := hex.EncodeToString(digest)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
