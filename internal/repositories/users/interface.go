package users

import (
	"context"

	"github.com/reishandy/noteapp/internal/models"
)

// Repository describes persistence operations for account records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Insert creates a new account. A duplicate username yields
	// common.ErrUsernameTaken.
	Insert(ctx context.Context, user *models.User) error

	// Update renames the account row and/or replaces its password hash.
	// Note ownership is not touched here; callers that rename must also
	// migrate notes within the same transaction.
	Update(ctx context.Context, oldUsername, newUsername, password string) error

	// Delete removes the account row. The schema's ON DELETE CASCADE
	// removes the user's notes as a side effect.
	Delete(ctx context.Context, username string) error

	// Get returns the account record, or common.ErrNotFound.
	Get(ctx context.Context, username string) (*models.User, error)

	// Exists reports whether an account with the given username exists.
	Exists(ctx context.Context, username string) (bool, error)
}
