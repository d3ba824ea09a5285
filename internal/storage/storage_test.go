package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "noteapp.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"users", "notes"} {
		var name string
		err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "noteapp.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// A note without an owning user must be rejected.
	_, err = db.ExecContext(ctx, `INSERT INTO notes(title, subtitle, content, timestamp, user_id)
	                              VALUES ('t', 's', 'c', 0, 'ghost')`)
	require.Error(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users(username, password) VALUES ('alice', 'hash')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO notes(title, subtitle, content, timestamp, user_id)
	                              VALUES ('t', 's', 'c', 0, 'alice')`)
	require.NoError(t, err)

	// Deleting the user cascades to the note.
	_, err = db.ExecContext(ctx, `DELETE FROM users WHERE username='alice'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "noteapp.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Migrations are idempotent across restarts.
	db, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
