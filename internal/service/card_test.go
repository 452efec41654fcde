package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"linguahouse/internal/domain"
	"linguahouse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCardService(repo *testutil.MockCardRepository, now time.Time) *CardService {
	s := NewCardService(repo, testutil.NewTestLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestCardService_SaveCard(t *testing.T) {
	now := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		card          domain.Card
		mockError     error
		expectedError error
		callsRepo     bool
	}{
		{
			name:      "valid card",
			card:      testutil.NewTestCard("食べる", "eat"),
			callsRepo: true,
		},
		{
			name:          "empty word",
			card:          testutil.NewTestCard("", "eat"),
			expectedError: domain.ErrValidation,
		},
		{
			name:          "no meanings",
			card:          domain.Card{Type: domain.CardTypeStraight, Word: domain.Word{Name: "x"}},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "meaning without translations",
			card:          testutil.NewTestCard("空"),
			expectedError: domain.ErrValidation,
		},
		{
			name:          "repository error passes through",
			card:          testutil.NewTestCard("飲む", "drink"),
			mockError:     domain.NewNotFoundError("profile", "ja"),
			expectedError: domain.ErrNotFound,
			callsRepo:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockCardRepository)
			if tt.callsRepo {
				mockRepo.On("SaveCard", mock.Anything, int64(123), "ja", tt.card).Return(tt.mockError)
			}

			service := newCardService(mockRepo, now)

			err := service.SaveCard(context.Background(), 123, "ja", tt.card)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCardService_SaveCardSetsCreationTime(t *testing.T) {
	now := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	card := testutil.NewTestCard("猫", "cat")
	card.CreatedAt = time.Time{}

	mockRepo := new(testutil.MockCardRepository)
	mockRepo.On("SaveCard", mock.Anything, int64(123), "ja", mock.MatchedBy(func(c domain.Card) bool {
		return c.CreatedAt.Equal(now)
	})).Return(nil)

	service := newCardService(mockRepo, now)

	assert.NoError(t, service.SaveCard(context.Background(), 123, "ja", card))
	mockRepo.AssertExpectations(t)
}

func TestCardService_SaveCards(t *testing.T) {
	cards := testutil.NewTestCards(3)

	mockRepo := new(testutil.MockCardRepository)
	mockRepo.On("SaveCard", mock.Anything, int64(123), "ja", cards[0]).Return(nil)
	mockRepo.On("SaveCard", mock.Anything, int64(123), "ja", cards[1]).Return(errors.New("db error"))

	service := newCardService(mockRepo, time.Now())

	err := service.SaveCards(context.Background(), 123, "ja", cards)

	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "SaveCard", mock.Anything, int64(123), "ja", cards[2])
}

func TestCardService_GetInvertedCards(t *testing.T) {
	now := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	source := domain.Card{
		Type: domain.CardTypeStraight,
		Word: domain.Word{Name: "食べる"},
		Meanings: []domain.Meaning{
			{Definition: "to eat", TranslatedDefinition: "comer", WordTranslations: []string{"eat", "consume"}},
			{Definition: "to live on", TranslatedDefinition: "vivir de", WordTranslations: []string{"eat"}},
		},
	}
	id := int64(5)
	existingConsume := &domain.Card{
		ID:   &id,
		Type: domain.CardTypeReverse,
		Word: domain.Word{Name: "consume"},
		Meanings: []domain.Meaning{
			{Definition: "consumir", TranslatedDefinition: "to use up", WordTranslations: []string{"使う"}},
		},
		Streak: 4,
	}

	mockRepo := new(testutil.MockCardRepository)
	mockRepo.On("GetCardByWordName", mock.Anything, int64(123), "ja", "eat").
		Return(nil, domain.NewNotFoundError("card", "eat")).Once()
	mockRepo.On("GetCardByWordName", mock.Anything, int64(123), "ja", "consume").
		Return(existingConsume, nil).Once()

	service := newCardService(mockRepo, now)

	cards, err := service.GetInvertedCards(context.Background(), 123, "ja", source)

	require.NoError(t, err)
	require.Len(t, cards, 2)

	eat := cards[0]
	assert.Equal(t, "eat", eat.Word.Name)
	assert.Equal(t, domain.CardTypeReverse, eat.Type)
	assert.Equal(t, 0, eat.Streak)
	assert.Equal(t, now, eat.CreatedAt)
	require.Len(t, eat.Meanings, 2)
	assert.Equal(t, "comer", eat.Meanings[0].Definition)
	assert.Equal(t, "vivir de", eat.Meanings[1].Definition)

	consume := cards[1]
	assert.Equal(t, int64(5), *consume.ID)
	assert.Equal(t, 4, consume.Streak)
	require.Len(t, consume.Meanings, 2)
	assert.Equal(t, []string{"食べる"}, consume.Meanings[1].WordTranslations)
	assert.Len(t, existingConsume.Meanings, 1)

	mockRepo.AssertExpectations(t)
}

func TestCardService_GetInvertedCardsRepositoryError(t *testing.T) {
	dbErr := errors.New("connection lost")

	mockRepo := new(testutil.MockCardRepository)
	mockRepo.On("GetCardByWordName", mock.Anything, int64(123), "ja", "eat").Return(nil, dbErr)

	service := newCardService(mockRepo, time.Now())

	cards, err := service.GetInvertedCards(context.Background(), 123, "ja", testutil.NewTestCard("食べる", "eat"))

	assert.Nil(t, cards)
	assert.Equal(t, dbErr, err)
	mockRepo.AssertExpectations(t)
}

func TestCardService_GetAndDelete(t *testing.T) {
	card := testutil.NewTestCard("猫", "cat")

	mockRepo := new(testutil.MockCardRepository)
	mockRepo.On("GetCardByWordName", mock.Anything, int64(123), "ja", "猫").Return(&card, nil)
	mockRepo.On("DeleteCard", mock.Anything, int64(123), "ja", "猫").Return(nil)

	service := newCardService(mockRepo, time.Now())
	ctx := context.Background()

	got, err := service.GetCard(ctx, 123, "ja", "猫")
	assert.NoError(t, err)
	assert.Equal(t, "猫", got.Word.Name)

	assert.NoError(t, service.DeleteCard(ctx, 123, "ja", "猫"))
	mockRepo.AssertExpectations(t)
}
