package services

import (
	"crypto/rand"
	"strings"
)

const (
	confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	confirmationLength   = 6

	// confirmationRetries bounds regeneration attempts when an insert hits
	// the unique constraint on confirmation_code.
	confirmationRetries = 5
)

// rejectAbove is the largest multiple of the alphabet size that fits in a
// byte; bytes at or above it are redrawn so every character is equally
// likely.
const rejectAbove = byte(256 / len(confirmationAlphabet) * len(confirmationAlphabet))

// GenerateConfirmationCode produces a 6-character code drawn uniformly over
// [A-Z0-9]. Uniqueness is not guaranteed by construction; the bookings table
// enforces it and callers regenerate on a duplicate-key failure.
func GenerateConfirmationCode() string {
	var sb strings.Builder
	sb.Grow(confirmationLength)

	buf := make([]byte, 1)
	for sb.Len() < confirmationLength {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand only fails when the platform entropy source is broken.
			panic("confirmation code entropy unavailable: " + err.Error())
		}
		if buf[0] >= rejectAbove {
			continue
		}
		sb.WriteByte(confirmationAlphabet[int(buf[0])%len(confirmationAlphabet)])
	}
	return sb.String()
}

// isDuplicateKey matches unique-constraint violations across the drivers in
// use (lib/pq, pgx via GORM, sqlite in tests).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
