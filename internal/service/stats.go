package service

import (
	"context"

	"linguahouse/internal/domain"
	"linguahouse/internal/repository"

	"go.uber.org/zap"
)

// StatsService reports learning progress
type StatsService struct {
	cardRepo repository.CardRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(cardRepo repository.CardRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

// GetProfileStats counts learned and unlearned cards of a profile
func (s *StatsService) GetProfileStats(ctx context.Context, userID int64, profile string) (*domain.ProfileStats, error) {
	unlearned, err := s.cardRepo.GetUnlearnedCards(ctx, userID, profile)
	if err != nil {
		s.logger.Error("Failed to load unlearned cards", zap.String("profile", profile), zap.Error(err))
		return nil, err
	}

	learned, err := s.cardRepo.GetLearnedCards(ctx, userID, profile)
	if err != nil {
		s.logger.Error("Failed to load learned cards", zap.String("profile", profile), zap.Error(err))
		return nil, err
	}

	return &domain.ProfileStats{
		Learned:   len(learned),
		Unlearned: len(unlearned),
	}, nil
}
