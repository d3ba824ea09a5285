// Package users provides the persistence layer for account records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reishandy/noteapp/internal/common"
	"github.com/reishandy/noteapp/internal/dbx"
	"github.com/reishandy/noteapp/internal/models"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// isUniqueViolation reports whether err is a primary key or unique
// constraint error. Foreign key violations are excluded on purpose: for a
// username rename they mean the notes were not migrated, not that the name
// is taken, and must surface as storage errors.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// Insert creates a new account row. The username primary key makes a
// duplicate insert fail; that failure is translated to ErrUsernameTaken.
func (r *SQLiteRepository) Insert(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, password) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, user.Username, user.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update renames the row keyed by oldUsername and replaces its hash. Used
// both for username changes (same hash, new name) and password changes
// (same name, new hash).
func (r *SQLiteRepository) Update(ctx context.Context, oldUsername, newUsername, password string) error {
	query := `UPDATE users SET username = ?, password = ? WHERE username = ?`
	res, err := r.db.ExecContext(ctx, query, newUsername, password, oldUsername)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
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

// Delete removes the account row; notes owned by it go with it via the
// FK cascade.
func (r *SQLiteRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM users WHERE username = ?`
	res, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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

// Get returns the account record for username.
func (r *SQLiteRepository) Get(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT username, password FROM users WHERE username = ?`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return user, nil
}

// Exists reports whether username is taken.
func (r *SQLiteRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
