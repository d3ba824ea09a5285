package common

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HashPassword returns the lowercase hex SHA-256 digest of password.
//
// This matches the hash stored by existing databases, so it must not be
// changed without a migration: an unsalted single-round SHA-256 is what
// every persisted users.password value contains.
func HashPassword(password []byte) string {
	digest := sha256.Sum256(password)
	return hex.EncodeToString(digest[:])
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Useful for removing passwords from memory after use. A nil slice
// is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// FormatTimestamp renders a note timestamp (Unix milliseconds) for display.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format("15:04 02/01/2006")
}
