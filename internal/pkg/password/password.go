// Package password is the one-way secret hasher. Plaintext passwords exist
// only transiently in memory; callers persist digests, never the input.
package password

import (
	"crypto/rand"

	"golang.org/x/crypto/bcrypt"
)

const generatedAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratedLength is the length of server-generated passwords (resets and
// administrative account creation).
const GeneratedLength = 10

// Hash derives a salted bcrypt digest from a plaintext secret.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain re-derives the stored digest. A malformed
// digest verifies false; it never surfaces as an error to the caller.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// Generate returns a random alphanumeric secret of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = GeneratedLength
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = generatedAlphabet[int(b[i])%len(generatedAlphabet)]
	}
	return string(b), nil
}
