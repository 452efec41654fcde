package testutil

import (
	"context"

	"linguahouse/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProfileRepository is a mock for ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) CreateProfile(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) (*domain.Profile, error) {
	args := m.Called(ctx, userID, targetLanguage, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, userID int64, targetLanguage string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, targetLanguage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListProfiles(ctx context.Context, userID int64) ([]domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) DeleteProfile(ctx context.Context, userID int64, targetLanguage string) error {
	args := m.Called(ctx, userID, targetLanguage)
	return args.Error(0)
}

func (m *MockProfileRepository) GetCardSettings(ctx context.Context, userID int64, targetLanguage string) (*domain.CardSettings, error) {
	args := m.Called(ctx, userID, targetLanguage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardSettings), args.Error(1)
}

func (m *MockProfileRepository) UpdateCardSettings(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) error {
	args := m.Called(ctx, userID, targetLanguage, settings)
	return args.Error(0)
}

// MockCardRepository is a mock for CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) GetUnlearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error) {
	args := m.Called(ctx, userID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCardRepository) GetLearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error) {
	args := m.Called(ctx, userID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCardRepository) GetCardByWordName(ctx context.Context, userID int64, profile, wordName string) (*domain.Card, error) {
	args := m.Called(ctx, userID, profile, wordName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) SaveCard(ctx context.Context, userID int64, profile string, card domain.Card) error {
	args := m.Called(ctx, userID, profile, card)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateCardStreak(ctx context.Context, userID int64, profile, wordName string, streak int) error {
	args := m.Called(ctx, userID, profile, wordName, streak)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteCard(ctx context.Context, userID int64, profile, wordName string) error {
	args := m.Called(ctx, userID, profile, wordName)
	return args.Error(0)
}
