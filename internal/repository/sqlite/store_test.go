package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linguahouse/internal/domain"
	"linguahouse/internal/migrations"
)

const testUserID = int64(100)

// newTestDB opens a migrated database in a temp dir with one user and a "ja" profile
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Up(db.DB, migrations.DialectSQLite, zap.NewNop()))

	ctx := context.Background()
	require.NoError(t, NewUserRepo(db).EnsureUserExists(ctx, testUserID))
	_, err = NewProfileRepo(db).CreateProfile(ctx, testUserID, "ja", domain.CardSettings{
		CardsPerSet:  5,
		TestMethod:   domain.TestMethodManual,
		StreakLength: 3,
	})
	require.NoError(t, err)

	return db
}
