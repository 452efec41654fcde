package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"linguahouse/internal/domain"
)

// CardRepo implements repository.CardRepository
type CardRepo struct {
	db *sql.DB
}

// NewCardRepo creates a new card repository
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

const cardColumns = `id, word_name, readings, card_type, meanings, streak, created_at`

// GetUnlearnedCards returns cards below the profile's streak length, oldest first
func (r *CardRepo) GetUnlearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error) {
	profileID, streakLength, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE profile_id = $1 AND streak < $2
		ORDER BY created_at ASC, id ASC
	`
	return r.queryCards(ctx, query, profileID, streakLength)
}

// GetLearnedCards returns cards that reached the profile's streak length, oldest first
func (r *CardRepo) GetLearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error) {
	profileID, streakLength, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE profile_id = $1 AND streak >= $2
		ORDER BY created_at ASC, id ASC
	`
	return r.queryCards(ctx, query, profileID, streakLength)
}

// GetCardByWordName returns a card by its exact word name
func (r *CardRepo) GetCardByWordName(ctx context.Context, userID int64, profile, wordName string) (*domain.Card, error) {
	profileID, _, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + cardColumns + ` FROM cards WHERE profile_id = $1 AND word_name = $2`

	card, err := scanCard(r.db.QueryRowContext(ctx, query, profileID, wordName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("card", wordName)
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	return card, nil
}

// SaveCard inserts the card or replaces the card with the same word name.
// The creation time of a replaced card is kept.
func (r *CardRepo) SaveCard(ctx context.Context, userID int64, profile string, card domain.Card) error {
	profileID, _, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return err
	}

	meanings, err := json.Marshal(card.Meanings)
	if err != nil {
		return fmt.Errorf("encode meanings: %w", err)
	}
	readings := card.Word.Readings
	if readings == nil {
		readings = []string{}
	}
	createdAt := card.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO cards (profile_id, word_name, readings, card_type, meanings, streak, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (profile_id, word_name)
		DO UPDATE SET readings = EXCLUDED.readings,
			card_type = EXCLUDED.card_type,
			meanings = EXCLUDED.meanings,
			streak = EXCLUDED.streak
	`
	_, err = r.db.ExecContext(ctx, query,
		profileID, card.Word.Name, pq.Array(readings), string(card.Type), meanings, card.Streak, createdAt,
	)
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// UpdateCardStreak sets the streak of a card
func (r *CardRepo) UpdateCardStreak(ctx context.Context, userID int64, profile, wordName string, streak int) error {
	profileID, _, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return err
	}

	query := `UPDATE cards SET streak = $1 WHERE profile_id = $2 AND word_name = $3`

	res, err := r.db.ExecContext(ctx, query, streak, profileID, wordName)
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}
	return requireAffected(res, "card", wordName)
}

// DeleteCard removes a card by word name
func (r *CardRepo) DeleteCard(ctx context.Context, userID int64, profile, wordName string) error {
	profileID, _, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return err
	}

	query := `DELETE FROM cards WHERE profile_id = $1 AND word_name = $2`

	res, err := r.db.ExecContext(ctx, query, profileID, wordName)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return requireAffected(res, "card", wordName)
}

// lookupProfile resolves the profile id and its learned threshold
func (r *CardRepo) lookupProfile(ctx context.Context, userID int64, profile string) (int64, int, error) {
	query := `SELECT id, streak_length FROM profiles WHERE user_id = $1 AND target_language = $2`

	var (
		id           int64
		streakLength int
	)
	err := r.db.QueryRowContext(ctx, query, userID, profile).Scan(&id, &streakLength)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, domain.NewNotFoundError("profile", profile)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("lookup profile: %w", err)
	}
	return id, streakLength, nil
}

func (r *CardRepo) queryCards(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, *card)
	}

	return cards, rows.Err()
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c        domain.Card
		id       int64
		readings pq.StringArray
		cardType string
		meanings []byte
	)
	err := row.Scan(&id, &c.Word.Name, &readings, &cardType, &meanings, &c.Streak, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(meanings, &c.Meanings); err != nil {
		return nil, fmt.Errorf("decode meanings: %w", err)
	}
	c.ID = &id
	c.Type = domain.CardType(cardType)
	if len(readings) > 0 {
		c.Word.Readings = []string(readings)
	}
	return &c, nil
}
