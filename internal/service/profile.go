package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"linguahouse/internal/domain"
	"linguahouse/internal/repository"

	"go.uber.org/zap"
)

const maxLanguageLength = 32

// ProfileService manages language profiles and their card settings
type ProfileService struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// NormalizeLanguage lowercases and trims a target language name
func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// CreateProfile creates a profile with default card settings
func (s *ProfileService) CreateProfile(ctx context.Context, userID int64, language string) (*domain.Profile, error) {
	language = NormalizeLanguage(language)
	if language == "" {
		return nil, domain.NewValidationError("target_language", "cannot be empty")
	}
	if utf8.RuneCountInString(language) > maxLanguageLength {
		return nil, domain.NewValidationError("target_language", "is too long")
	}

	profile, err := s.profileRepo.CreateProfile(ctx, userID, language, domain.DefaultCardSettings())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profile created",
		zap.Int64("user_id", userID),
		zap.String("profile", language),
	)
	return profile, nil
}

// GetProfile returns a profile by target language
func (s *ProfileService) GetProfile(ctx context.Context, userID int64, language string) (*domain.Profile, error) {
	return s.profileRepo.GetProfile(ctx, userID, NormalizeLanguage(language))
}

// ListProfiles returns the user's profiles
func (s *ProfileService) ListProfiles(ctx context.Context, userID int64) ([]domain.Profile, error) {
	return s.profileRepo.ListProfiles(ctx, userID)
}

// DeleteProfile removes a profile and all of its cards
func (s *ProfileService) DeleteProfile(ctx context.Context, userID int64, language string) error {
	language = NormalizeLanguage(language)
	if err := s.profileRepo.DeleteProfile(ctx, userID, language); err != nil {
		return err
	}

	s.logger.Info("Profile deleted",
		zap.Int64("user_id", userID),
		zap.String("profile", language),
	)
	return nil
}

// GetCardSettings returns the card settings of a profile
func (s *ProfileService) GetCardSettings(ctx context.Context, userID int64, language string) (*domain.CardSettings, error) {
	return s.profileRepo.GetCardSettings(ctx, userID, NormalizeLanguage(language))
}

// UpdateCardSettings validates and stores new card settings
func (s *ProfileService) UpdateCardSettings(ctx context.Context, userID int64, language string, settings domain.CardSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.profileRepo.UpdateCardSettings(ctx, userID, NormalizeLanguage(language), settings)
}
