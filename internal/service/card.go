package service

import (
	"context"
	"errors"
	"time"

	"linguahouse/internal/domain"
	"linguahouse/internal/repository"

	"go.uber.org/zap"
)

// CardService handles card editing and inverse card generation
type CardService struct {
	cardRepo repository.CardRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewCardService creates a new card service
func NewCardService(cardRepo repository.CardRepository, logger *zap.Logger) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// SaveCard validates and stores a card, replacing one with the same word name
func (s *CardService) SaveCard(ctx context.Context, userID int64, profile string, card domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = s.now()
	}
	return s.cardRepo.SaveCard(ctx, userID, profile, card)
}

// SaveCards stores a reviewed batch of cards, stopping at the first error
func (s *CardService) SaveCards(ctx context.Context, userID int64, profile string, cards []domain.Card) error {
	for _, card := range cards {
		if err := s.SaveCard(ctx, userID, profile, card); err != nil {
			return err
		}
	}

	s.logger.Info("Cards saved",
		zap.Int64("user_id", userID),
		zap.String("profile", profile),
		zap.Int("count", len(cards)),
	)
	return nil
}

// GetCard returns a card by word name
func (s *CardService) GetCard(ctx context.Context, userID int64, profile, wordName string) (*domain.Card, error) {
	return s.cardRepo.GetCardByWordName(ctx, userID, profile, wordName)
}

// DeleteCard removes a card by word name
func (s *CardService) DeleteCard(ctx context.Context, userID int64, profile, wordName string) error {
	return s.cardRepo.DeleteCard(ctx, userID, profile, wordName)
}

// GetInvertedCards returns the reverse-direction cards derived from card, unsaved.
// Translations that already name a card in the profile are merged into that card.
func (s *CardService) GetInvertedCards(ctx context.Context, userID int64, profile string, card domain.Card) ([]domain.Card, error) {
	existing := make(map[string]domain.Card)
	looked := make(map[string]bool)
	for _, meaning := range card.Meanings {
		for _, translation := range meaning.WordTranslations {
			if looked[translation] {
				continue
			}
			looked[translation] = true

			found, err := s.cardRepo.GetCardByWordName(ctx, userID, profile, translation)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			existing[translation] = *found
		}
	}

	return domain.InvertCard(card, existing, s.now()), nil
}
