package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"linguahouse/internal/domain"
)

// CardRepo implements repository.CardRepository
type CardRepo struct {
	db *sqlx.DB
}

// NewCardRepo creates a new card repository
func NewCardRepo(db *sqlx.DB) *CardRepo {
	return &CardRepo{db: db}
}

// cardRecord mirrors a cards row; readings and meanings are JSON text
type cardRecord struct {
	ID        int64     `db:"id"`
	WordName  string    `db:"word_name"`
	Readings  string    `db:"readings"`
	CardType  string    `db:"card_type"`
	Meanings  string    `db:"meanings"`
	Streak    int       `db:"streak"`
	CreatedAt time.Time `db:"created_at"`
}

func (r cardRecord) toDomain() (domain.Card, error) {
	c := domain.Card{
		Type:      domain.CardType(r.CardType),
		Word:      domain.Word{Name: r.WordName},
		Streak:    r.Streak,
		CreatedAt: r.CreatedAt,
	}
	id := r.ID
	c.ID = &id

	if err := json.Unmarshal([]byte(r.Readings), &c.Word.Readings); err != nil {
		return domain.Card{}, fmt.Errorf("decode readings: %w", err)
	}
	if len(c.Word.Readings) == 0 {
		c.Word.Readings = nil
	}
	if err := json.Unmarshal([]byte(r.Meanings), &c.Meanings); err != nil {
		return domain.Card{}, fmt.Errorf("decode meanings: %w", err)
	}
	return c, nil
}

type profileRef struct {
	ID           int64 `db:"id"`
	StreakLength int   `db:"streak_length"`
}

const cardColumns = `id, word_name, readings, card_type, meanings, streak, created_at`

// GetUnlearnedCards returns cards below the profile's streak length, oldest first
func (r *CardRepo) GetUnlearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error) {
	ref, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + cardColumns + ` FROM cards WHERE profile_id = ? AND streak < ? ORDER BY created_at ASC, id ASC`
	return r.selectCards(ctx, query, ref.ID, ref.StreakLength)
}

// GetLearnedCards returns cards that reached the profile's streak length, oldest first
func (r *CardRepo) GetLearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error) {
	ref, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + cardColumns + ` FROM cards WHERE profile_id = ? AND streak >= ? ORDER BY created_at ASC, id ASC`
	return r.selectCards(ctx, query, ref.ID, ref.StreakLength)
}

// GetCardByWordName returns a card by its exact word name
func (r *CardRepo) GetCardByWordName(ctx context.Context, userID int64, profile, wordName string) (*domain.Card, error) {
	ref, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	var rec cardRecord
	query := `SELECT ` + cardColumns + ` FROM cards WHERE profile_id = ? AND word_name = ?`
	err = r.db.GetContext(ctx, &rec, query, ref.ID, wordName)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("card", wordName)
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	card, err := rec.toDomain()
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// SaveCard inserts the card or replaces the card with the same word name.
// The creation time of a replaced card is kept.
func (r *CardRepo) SaveCard(ctx context.Context, userID int64, profile string, card domain.Card) error {
	ref, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return err
	}

	readings := card.Word.Readings
	if readings == nil {
		readings = []string{}
	}
	readingsJSON, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("encode readings: %w", err)
	}
	meaningsJSON, err := json.Marshal(card.Meanings)
	if err != nil {
		return fmt.Errorf("encode meanings: %w", err)
	}
	createdAt := card.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO cards (profile_id, word_name, readings, card_type, meanings, streak, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (profile_id, word_name)
		DO UPDATE SET readings = excluded.readings,
			card_type = excluded.card_type,
			meanings = excluded.meanings,
			streak = excluded.streak
	`
	_, err = r.db.ExecContext(ctx, query,
		ref.ID, card.Word.Name, string(readingsJSON), string(card.Type), string(meaningsJSON), card.Streak, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// UpdateCardStreak sets the streak of a card
func (r *CardRepo) UpdateCardStreak(ctx context.Context, userID int64, profile, wordName string, streak int) error {
	ref, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE cards SET streak = ? WHERE profile_id = ? AND word_name = ?`, streak, ref.ID, wordName)
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}
	return requireAffected(res, "card", wordName)
}

// DeleteCard removes a card by word name
func (r *CardRepo) DeleteCard(ctx context.Context, userID int64, profile, wordName string) error {
	ref, err := r.lookupProfile(ctx, userID, profile)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cards WHERE profile_id = ? AND word_name = ?`, ref.ID, wordName)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return requireAffected(res, "card", wordName)
}

func (r *CardRepo) lookupProfile(ctx context.Context, userID int64, profile string) (profileRef, error) {
	var ref profileRef
	err := r.db.GetContext(ctx, &ref,
		`SELECT id, streak_length FROM profiles WHERE user_id = ? AND target_language = ?`, userID, profile)
	if isNoRows(err) {
		return ref, domain.NewNotFoundError("profile", profile)
	}
	if err != nil {
		return ref, fmt.Errorf("lookup profile: %w", err)
	}
	return ref, nil
}

func (r *CardRepo) selectCards(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	var recs []cardRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}

	cards := make([]domain.Card, 0, len(recs))
	for _, rec := range recs {
		card, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
