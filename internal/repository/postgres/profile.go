package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"linguahouse/internal/domain"
)

// ProfileRepo implements repository.ProfileRepository
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `id, user_id, target_language, cards_per_set, test_method, streak_length, created_at`

// CreateProfile inserts a profile with the given settings
func (r *ProfileRepo) CreateProfile(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) (*domain.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, target_language, cards_per_set, test_method, streak_length)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, target_language) DO NOTHING
		RETURNING id, created_at
	`
	p := domain.Profile{
		UserID:         userID,
		TargetLanguage: targetLanguage,
		Settings:       settings,
	}
	err := r.db.QueryRowContext(ctx, query,
		userID, targetLanguage, settings.CardsPerSet, string(settings.TestMethod), settings.StreakLength,
	).Scan(&p.ID, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %q: %w", targetLanguage, domain.ErrAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &p, nil
}

// GetProfile returns a profile by target language
func (r *ProfileRepo) GetProfile(ctx context.Context, userID int64, targetLanguage string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 AND target_language = $2`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, userID, targetLanguage))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("profile", targetLanguage)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}

// ListProfiles returns all profiles of a user ordered by language
func (r *ProfileRepo) ListProfiles(ctx context.Context, userID int64) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 ORDER BY target_language`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}

	return profiles, rows.Err()
}

// DeleteProfile removes a profile together with its cards
func (r *ProfileRepo) DeleteProfile(ctx context.Context, userID int64, targetLanguage string) error {
	query := `DELETE FROM profiles WHERE user_id = $1 AND target_language = $2`

	res, err := r.db.ExecContext(ctx, query, userID, targetLanguage)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return requireAffected(res, "profile", targetLanguage)
}

// GetCardSettings returns the card settings of a profile
func (r *ProfileRepo) GetCardSettings(ctx context.Context, userID int64, targetLanguage string) (*domain.CardSettings, error) {
	query := `
		SELECT cards_per_set, test_method, streak_length
		FROM profiles
		WHERE user_id = $1 AND target_language = $2
	`
	var (
		s      domain.CardSettings
		method string
	)
	err := r.db.QueryRowContext(ctx, query, userID, targetLanguage).Scan(&s.CardsPerSet, &method, &s.StreakLength)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("profile", targetLanguage)
	}
	if err != nil {
		return nil, fmt.Errorf("get card settings: %w", err)
	}
	s.TestMethod = domain.TestMethod(method)

	return &s, nil
}

// UpdateCardSettings replaces the card settings of a profile
func (r *ProfileRepo) UpdateCardSettings(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) error {
	query := `
		UPDATE profiles
		SET cards_per_set = $1, test_method = $2, streak_length = $3
		WHERE user_id = $4 AND target_language = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		settings.CardsPerSet, string(settings.TestMethod), settings.StreakLength, userID, targetLanguage,
	)
	if err != nil {
		return fmt.Errorf("update card settings: %w", err)
	}
	return requireAffected(res, "profile", targetLanguage)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		p      domain.Profile
		method string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.TargetLanguage,
		&p.Settings.CardsPerSet, &method, &p.Settings.StreakLength, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Settings.TestMethod = domain.TestMethod(method)
	return &p, nil
}

// requireAffected turns an update that touched no rows into a not-found error
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}
