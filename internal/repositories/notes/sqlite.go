// Package notes provides the persistence layer for note records, plus a
// Feed that turns the note list into a live subscription.
package notes

import (
	"context"
	"fmt"

	"github.com/reishandy/noteapp/internal/common"
	"github.com/reishandy/noteapp/internal/dbx"
	"github.com/reishandy/noteapp/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert stores a new note and writes the generated rowid into note.ID.
func (r *SQLiteRepository) Insert(ctx context.Context, note *models.Note) error {
	query := `INSERT INTO notes (title, subtitle, content, timestamp, user_id)
	          VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		note.Title, note.Subtitle, note.Content, note.Timestamp, note.UserID)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted note id: %w", err)
	}
	note.ID = id
	return nil
}

// Delete removes a note by id. It expects exactly one row to be affected.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Update is a partial update by primary key: id and owner stay untouched,
// everything else including the timestamp is rewritten.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, title, subtitle, content string, timestamp int64) error {
	query := `UPDATE notes SET title = ?, subtitle = ?, content = ?, timestamp = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, title, subtitle, content, timestamp, id)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

// GetAll lists notes owned by username ordered by timestamp descending,
// most recently touched first.
func (r *SQLiteRepository) GetAll(ctx context.Context, username string) ([]models.Note, error) {
	query := `SELECT id, title, subtitle, content, timestamp, user_id FROM notes
	          WHERE user_id = ? ORDER BY timestamp DESC`
	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.Title, &item.Subtitle, &item.Content, &item.Timestamp, &item.UserID); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RenameOwner moves every note of oldUsername to newUsername. Zero affected
// rows is fine: a user without notes can still rename.
func (r *SQLiteRepository) RenameOwner(ctx context.Context, oldUsername, newUsername string) error {
	query := `UPDATE notes SET user_id = ? WHERE user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, newUsername, oldUsername); err != nil {
		return fmt.Errorf("failed to rename note owner: %w", err)
	}
	return nil
}
