package utils

import (
	"crypto/rand"
	"fmt"
)

const roomCodeLength = 6

// GenerateRoomCode returns a random 6-digit join code. Uniqueness is the
// caller's problem: check against the store and retry on collision.
func GenerateRoomCode() (string, error) {
	const digits = "0123456789"

	b := make([]byte, roomCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}

	return string(b), nil
}
