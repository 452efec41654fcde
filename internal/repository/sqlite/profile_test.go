package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguahouse/internal/domain"
)

func TestProfileRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	created, err := repo.CreateProfile(ctx, testUserID, "es", domain.DefaultCardSettings())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetProfile(ctx, testUserID, "es")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, domain.DefaultCardSettings(), got.Settings)

	_, err = repo.CreateProfile(ctx, testUserID, "es", domain.DefaultCardSettings())
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = repo.GetProfile(ctx, testUserID, "fr")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepo_ListProfiles(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	_, err := repo.CreateProfile(ctx, testUserID, "de", domain.DefaultCardSettings())
	require.NoError(t, err)

	profiles, err := repo.ListProfiles(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "de", profiles[0].TargetLanguage)
	assert.Equal(t, "ja", profiles[1].TargetLanguage)

	profiles, err = repo.ListProfiles(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestProfileRepo_CardSettings(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	settings, err := repo.GetCardSettings(ctx, testUserID, "ja")
	require.NoError(t, err)
	assert.Equal(t, domain.CardSettings{CardsPerSet: 5, TestMethod: domain.TestMethodManual, StreakLength: 3}, *settings)

	updated := domain.CardSettings{CardsPerSet: 12, TestMethod: domain.TestMethodSelfReview, StreakLength: 8}
	require.NoError(t, repo.UpdateCardSettings(ctx, testUserID, "ja", updated))

	settings, err = repo.GetCardSettings(ctx, testUserID, "ja")
	require.NoError(t, err)
	assert.Equal(t, updated, *settings)

	_, err = repo.GetCardSettings(ctx, testUserID, "xx")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateCardSettings(ctx, testUserID, "xx", updated), domain.ErrNotFound)
}

func TestProfileRepo_DeleteProfileRemovesCards(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepo(db)
	cards := NewCardRepo(db)
	ctx := context.Background()

	require.NoError(t, cards.SaveCard(ctx, testUserID, "ja", sampleCard("食べる", "eat")))
	require.NoError(t, profiles.DeleteProfile(ctx, testUserID, "ja"))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM cards`))
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, profiles.DeleteProfile(ctx, testUserID, "ja"), domain.ErrNotFound)
}
