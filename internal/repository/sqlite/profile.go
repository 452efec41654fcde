package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"linguahouse/internal/domain"
)

// ProfileRepo implements repository.ProfileRepository
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

type profileRecord struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	TargetLanguage string    `db:"target_language"`
	CardsPerSet    int       `db:"cards_per_set"`
	TestMethod     string    `db:"test_method"`
	StreakLength   int       `db:"streak_length"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r profileRecord) toDomain() domain.Profile {
	return domain.Profile{
		ID:             r.ID,
		UserID:         r.UserID,
		TargetLanguage: r.TargetLanguage,
		Settings: domain.CardSettings{
			CardsPerSet:  r.CardsPerSet,
			TestMethod:   domain.TestMethod(r.TestMethod),
			StreakLength: r.StreakLength,
		},
		CreatedAt: r.CreatedAt,
	}
}

const profileColumns = `id, user_id, target_language, cards_per_set, test_method, streak_length, created_at`

// CreateProfile inserts a profile with the given settings
func (r *ProfileRepo) CreateProfile(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) (*domain.Profile, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO profiles (user_id, target_language, cards_per_set, test_method, streak_length, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		userID, targetLanguage, settings.CardsPerSet, string(settings.TestMethod), settings.StreakLength, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("profile %q: %w", targetLanguage, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &domain.Profile{
		ID:             id,
		UserID:         userID,
		TargetLanguage: targetLanguage,
		Settings:       settings,
		CreatedAt:      now,
	}, nil
}

// GetProfile returns a profile by target language
func (r *ProfileRepo) GetProfile(ctx context.Context, userID int64, targetLanguage string) (*domain.Profile, error) {
	var rec profileRecord
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ? AND target_language = ?`
	err := r.db.GetContext(ctx, &rec, query, userID, targetLanguage)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("profile", targetLanguage)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p := rec.toDomain()
	return &p, nil
}

// ListProfiles returns all profiles of a user ordered by language
func (r *ProfileRepo) ListProfiles(ctx context.Context, userID int64) ([]domain.Profile, error) {
	var recs []profileRecord
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ? ORDER BY target_language`
	if err := r.db.SelectContext(ctx, &recs, query, userID); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(recs))
	for _, rec := range recs {
		profiles = append(profiles, rec.toDomain())
	}
	return profiles, nil
}

// DeleteProfile removes a profile together with its cards
func (r *ProfileRepo) DeleteProfile(ctx context.Context, userID int64, targetLanguage string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE user_id = ? AND target_language = ?`, userID, targetLanguage)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return requireAffected(res, "profile", targetLanguage)
}

// GetCardSettings returns the card settings of a profile
func (r *ProfileRepo) GetCardSettings(ctx context.Context, userID int64, targetLanguage string) (*domain.CardSettings, error) {
	p, err := r.GetProfile(ctx, userID, targetLanguage)
	if err != nil {
		return nil, err
	}
	return &p.Settings, nil
}

// UpdateCardSettings replaces the card settings of a profile
func (r *ProfileRepo) UpdateCardSettings(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) error {
	query := `
		UPDATE profiles
		SET cards_per_set = ?, test_method = ?, streak_length = ?
		WHERE user_id = ? AND target_language = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		settings.CardsPerSet, string(settings.TestMethod), settings.StreakLength, userID, targetLanguage)
	if err != nil {
		return fmt.Errorf("update card settings: %w", err)
	}
	return requireAffected(res, "profile", targetLanguage)
}
