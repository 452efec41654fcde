package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUp_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	logger := zap.NewNop()

	require.NoError(t, Up(db, DialectSQLite, logger))
	// second run has nothing to apply
	require.NoError(t, Up(db, DialectSQLite, logger))

	for _, table := range []string{"users", "profiles", "cards"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestUp_UnknownDialect(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	err = Up(db, "oracle", zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}
