// Package storagetest creates throwaway V2 databases for tests.
package storagetest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// Schema is the subset of the V2 application schema the migration writes to
const Schema = `
CREATE TABLE setting (
	key TEXT NOT NULL PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE deck_cache (
	anki_id INTEGER NOT NULL PRIMARY KEY,
	name TEXT NOT NULL,
	last_sync_timestamp INTEGER,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE cached_note (
	id INTEGER NOT NULL PRIMARY KEY,
	deck_id INTEGER NOT NULL,
	deck_name TEXT NOT NULL,
	model_name TEXT NOT NULL,
	tags TEXT NOT NULL,
	mod INTEGER NOT NULL,
	estimated_tokens INTEGER,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE session (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	deck_id INTEGER NOT NULL,
	deck_name TEXT NOT NULL,
	prompt TEXT NOT NULL,
	state TEXT NOT NULL CHECK (state IN ('pending','running','completed','failed','cancelled','incomplete')),
	state_message TEXT,
	exit_code INTEGER,
	progress_processed_cards INTEGER NOT NULL DEFAULT 0,
	progress_total_cards INTEGER NOT NULL DEFAULT 0,
	progress_processed_batches INTEGER NOT NULL DEFAULT 0,
	progress_total_batches INTEGER NOT NULL DEFAULT 0,
	progress_suggestions_count INTEGER NOT NULL DEFAULT 0,
	progress_input_tokens INTEGER NOT NULL DEFAULT 0,
	progress_output_tokens INTEGER NOT NULL DEFAULT 0,
	progress_failed_batches INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE suggestion (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES session(id) ON DELETE CASCADE,
	note_id INTEGER NOT NULL,
	reasoning TEXT NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('accepted','rejected','pending')),
	created_at INTEGER NOT NULL,
	decided_at INTEGER,
	UNIQUE (session_id, note_id)
);

CREATE TABLE history_entry (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES session(id) ON DELETE CASCADE,
	note_id INTEGER NOT NULL,
	deck_id INTEGER NOT NULL,
	deck_name TEXT NOT NULL,
	action TEXT NOT NULL,
	reasoning TEXT,
	timestamp INTEGER NOT NULL
);

CREATE TABLE field_value (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	note_id INTEGER REFERENCES cached_note(id) ON DELETE CASCADE,
	suggestion_id INTEGER REFERENCES suggestion(id) ON DELETE CASCADE,
	history_id INTEGER REFERENCES history_entry(id) ON DELETE CASCADE,
	context TEXT NOT NULL CHECK (context IN ('current','original','changes','ai_changes','applied','user_edits')),
	field_name TEXT NOT NULL CHECK (field_name <> ''),
	field_value TEXT NOT NULL,
	field_order INTEGER NOT NULL DEFAULT 0,
	CHECK ((note_id IS NOT NULL) + (suggestion_id IS NOT NULL) + (history_id IS NOT NULL) = 1)
);
`

// NewDatabase creates a database file holding the V2 schema and returns its path
func NewDatabase(tb testing.TB) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "ankideku.db")
	CreateDatabase(tb, path)
	return path
}

// CreateDatabase writes the V2 schema into a new database file at path
func CreateDatabase(tb testing.TB, path string) {
	tb.Helper()

	db, err := sql.Open("sqlite3", path)
	require.NoError(tb, err)
	defer db.Close()

	_, err = db.Exec(Schema)
	require.NoError(tb, err)
}

// Count returns the number of rows of table matching the optional where clause
func Count(tb testing.TB, path string, table string, where string, args ...any) int {
	tb.Helper()

	db, err := sql.Open("sqlite3", path)
	require.NoError(tb, err)
	defer db.Close()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(tb, db.QueryRow(query, args...).Scan(&n))
	return n
}

// FieldRow is one field_value row as read back by tests
type FieldRow struct {
	Name  string
	Order int
	Value string
}

// Fields returns the field_value rows whose owner column matches id in
// context fieldCtx, ordered by position
func Fields(tb testing.TB, path string, ownerColumn string, id int64, fieldCtx string) []FieldRow {
	tb.Helper()

	db, err := sql.Open("sqlite3", path)
	require.NoError(tb, err)
	defer db.Close()

	rows, err := db.Query(
		"SELECT field_name, field_order, field_value FROM field_value WHERE "+ownerColumn+" = ? AND context = ? ORDER BY field_order, id",
		id, fieldCtx)
	require.NoError(tb, err)
	defer rows.Close()

	var fields []FieldRow
	for rows.Next() {
		var f FieldRow
		require.NoError(tb, rows.Scan(&f.Name, &f.Order, &f.Value))
		fields = append(fields, f)
	}
	require.NoError(tb, rows.Err())
	return fields
}
