package testutil

import (
	"fmt"
	"time"

	"linguahouse/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCard creates a straight card with a single meaning
func NewTestCard(name string, translations ...string) domain.Card {
	return domain.Card{
		Type: domain.CardTypeStraight,
		Word: domain.Word{Name: name},
		Meanings: []domain.Meaning{{
			Definition:           "definition of " + name,
			TranslatedDefinition: "translated definition of " + name,
			WordTranslations:     translations,
		}},
		CreatedAt: time.Now(),
	}
}

// NewTestCards creates n cards named word1..wordN answered by answer1..answerN
func NewTestCards(n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = NewTestCard(fmt.Sprintf("word%d", i+1), fmt.Sprintf("answer%d", i+1))
	}
	return cards
}

// NewTestProfile creates a profile with default settings
func NewTestProfile(userID int64, targetLanguage string) *domain.Profile {
	return &domain.Profile{
		ID:             1,
		UserID:         userID,
		TargetLanguage: targetLanguage,
		Settings:       domain.DefaultCardSettings(),
		CreatedAt:      time.Now(),
	}
}
