package models

// Note is a single text note owned by a user.
//
// Timestamp is Unix milliseconds: creation time on insert, refreshed on
// every edit. UserID references users.username and is rewritten in bulk
// when the owning account is renamed.
type Note struct {
	ID        int64
	Title     string
	Subtitle  string
	Content   string
	Timestamp int64
	UserID    string
}
