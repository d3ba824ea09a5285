// Package models defines the persisted data records of the note keeper.
package models

// User is an account record. Password always holds the lowercase hex
// SHA-256 digest of the user's password, never the plaintext.
type User struct {
	Username string
	Password string
}
