package repository

import (
	"context"

	"linguahouse/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64) error
}

// ProfileRepository defines language profile operations.
// A profile is identified by its owner and target language.
type ProfileRepository interface {
	// CreateProfile returns domain.ErrAlreadyExists when the profile exists
	CreateProfile(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID int64, targetLanguage string) (*domain.Profile, error)
	ListProfiles(ctx context.Context, userID int64) ([]domain.Profile, error)
	DeleteProfile(ctx context.Context, userID int64, targetLanguage string) error
	// GetCardSettings returns domain.ErrNotFound when the profile is absent
	GetCardSettings(ctx context.Context, userID int64, targetLanguage string) (*domain.CardSettings, error)
	UpdateCardSettings(ctx context.Context, userID int64, targetLanguage string, settings domain.CardSettings) error
}

// CardRepository defines card data operations within a profile.
// Card lists are ordered by ascending creation time.
type CardRepository interface {
	// GetUnlearnedCards returns cards whose streak is below the profile's streak length
	GetUnlearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error)
	// GetLearnedCards returns cards whose streak reached the profile's streak length
	GetLearnedCards(ctx context.Context, userID int64, profile string) ([]domain.Card, error)
	GetCardByWordName(ctx context.Context, userID int64, profile, wordName string) (*domain.Card, error)
	// SaveCard creates the card or replaces the one with the same word name
	SaveCard(ctx context.Context, userID int64, profile string, card domain.Card) error
	// UpdateCardStreak sets the absolute streak value of a card
	UpdateCardStreak(ctx context.Context, userID int64, profile, wordName string, streak int) error
	DeleteCard(ctx context.Context, userID int64, profile, wordName string) error
}
