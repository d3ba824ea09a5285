package notes

import (
	"context"

	"github.com/reishandy/noteapp/internal/models"
)

// Repository describes persistence operations for note records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Insert stores a new note and assigns the generated id back onto it.
	Insert(ctx context.Context, note *models.Note) error

	// Delete removes a note by id; common.ErrNotFound if there is none.
	Delete(ctx context.Context, id int64) error

	// Update rewrites title, subtitle, content, and timestamp of the note
	// with the given id.
	Update(ctx context.Context, id int64, title, subtitle, content string, timestamp int64) error

	// GetAll returns every note owned by username, most recent first.
	GetAll(ctx context.Context, username string) ([]models.Note, error)

	// RenameOwner bulk-rewrites ownership of every note belonging to
	// oldUsername.
	RenameOwner(ctx context.Context, oldUsername, newUsername string) error
}
