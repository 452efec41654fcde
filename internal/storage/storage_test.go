package storage

import (
	"context"
	"path/filepath"
	"testing"

	"linguahouse/internal/config"
	"linguahouse/internal/domain"
	"linguahouse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "cards.db"),
	}

	store, err := Open(cfg, testutil.NewTestLogger())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Users.EnsureUserExists(ctx, 5))
	_, err = store.Profiles.CreateProfile(ctx, 5, "de", domain.DefaultCardSettings())
	require.NoError(t, err)
	require.NoError(t, store.Cards.SaveCard(ctx, 5, "de", testutil.NewTestCard("Hund", "dog")))

	cards, err := store.Cards.GetUnlearnedCards(ctx, 5, "de")
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestOpen_SQLiteTwice(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "cards.db"),
	}

	first, err := Open(cfg, testutil.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(cfg, testutil.NewTestLogger())
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, testutil.NewTestLogger())
	assert.ErrorContains(t, err, "oracle")
}
