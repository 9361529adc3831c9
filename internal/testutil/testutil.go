package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/mrezvani/vocaflash/internal/store/sqlite"
)

// NewTestStore creates a Store over an in-memory SQLite database with all
// migrations applied, closed automatically when the test ends.
func NewTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	for _, migration := range sqlite.Migrations() {
		_, err := db.Exec(migration.SQL)
		require.NoError(t, err, "failed to apply migration %s", migration.Version)
	}

	s := sqlite.NewFromDB(db)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}
