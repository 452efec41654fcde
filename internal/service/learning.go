package service

import (
	"context"
	"math/rand"
	"time"

	"linguahouse/internal/domain"
	"linguahouse/internal/matcher"
	"linguahouse/internal/repository"

	"go.uber.org/zap"
)

// LearningService builds learning sessions and grades their answers
type LearningService struct {
	cardRepo    repository.CardRepository
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
	shuffle     func([]domain.Card)
}

// NewLearningService creates a new learning service
func NewLearningService(cardRepo repository.CardRepository, profileRepo repository.ProfileRepository, logger *zap.Logger) *LearningService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &LearningService{
		cardRepo:    cardRepo,
		profileRepo: profileRepo,
		logger:      logger,
		shuffle: func(cards []domain.Card) {
			rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		},
	}
}

// CreateLearningSession starts a session over the profile's unlearned cards in creation order.
// startCardNumber is 1-based; values outside the card range are clamped.
func (s *LearningService) CreateLearningSession(ctx context.Context, userID int64, profile string, startCardNumber int) (*domain.LearningSession, error) {
	settings, err := s.profileRepo.GetCardSettings(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetUnlearnedCards(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	session, err := domain.NewLearningSession(cards, startCardNumber-1, settings.CardsPerSet, settings.TestMethod, domain.ModeLearn)
	if err != nil {
		return nil, err
	}

	s.logSession(userID, profile, session)
	return session, nil
}

// CreateTestSession starts a session over all unlearned cards in random order
func (s *LearningService) CreateTestSession(ctx context.Context, userID int64, profile string) (*domain.LearningSession, error) {
	settings, err := s.profileRepo.GetCardSettings(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetUnlearnedCards(ctx, userID, profile)
	if err != nil {
		return nil, err
	}
	s.shuffle(cards)

	session, err := domain.NewLearningSession(cards, 0, settings.CardsPerSet, settings.TestMethod, domain.ModeTest)
	if err != nil {
		return nil, err
	}

	s.logSession(userID, profile, session)
	return session, nil
}

// CreateRepeatSession starts a session over learned cards in random order
func (s *LearningService) CreateRepeatSession(ctx context.Context, userID int64, profile string) (*domain.LearningSession, error) {
	settings, err := s.profileRepo.GetCardSettings(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetLearnedCards(ctx, userID, profile)
	if err != nil {
		return nil, err
	}
	s.shuffle(cards)

	session, err := domain.NewLearningSession(cards, 0, settings.CardsPerSet, settings.TestMethod, domain.ModeRepeat)
	if err != nil {
		return nil, err
	}

	s.logSession(userID, profile, session)
	return session, nil
}

// CheckAnswer grades a typed answer for the session's current test card.
// A match consumes the canonical answer; a miss marks the card failed.
// Answers to a card that needs no more input are ignored.
func (s *LearningService) CheckAnswer(session *domain.LearningSession, input string) (bool, string) {
	card := session.CurrentCard()
	if session.Phase() != domain.PhaseTest || card == nil || session.IsTestComplete() {
		return false, ""
	}
	// A card without translations cannot be answered
	if card.RequiredAnswers() == 0 {
		session.MarkCurrentCardFailed()
		return false, ""
	}
	if session.IsCurrentCardComplete() {
		return false, ""
	}

	ok, matched := matcher.Match(input, card.AcceptableAnswers(), session.ProvidedAnswers())
	if !ok {
		session.MarkCurrentCardFailed()
		return false, ""
	}

	session.RecordProvidedAnswer(matched)
	return true, matched
}

// ProcessSelfReview returns the result of a self-graded card.
// Self review has no typed or expected answer.
func (s *LearningService) ProcessSelfReview(userID int64, profile, wordName string, isCorrect bool) domain.TestResult {
	s.logger.Debug("Self review",
		zap.Int64("user_id", userID),
		zap.String("profile", profile),
		zap.String("word", wordName),
		zap.Bool("correct", isCorrect),
	)
	return domain.NewSelfReviewResult(wordName, isCorrect)
}

// ProcessTestResults writes the streaks resulting from a tested set.
// In learn and test modes a correct answer extends the streak; in repeat mode it keeps it.
// A wrong answer always resets the streak to zero.
func (s *LearningService) ProcessTestResults(ctx context.Context, userID int64, profile string, results []domain.TestResult, mode domain.SessionMode) error {
	for _, result := range results {
		card, err := s.cardRepo.GetCardByWordName(ctx, userID, profile, result.WordName)
		if err != nil {
			return err
		}

		streak := nextStreak(card.Streak, result.IsCorrect, mode)
		if streak == card.Streak {
			continue
		}

		if err := s.cardRepo.UpdateCardStreak(ctx, userID, profile, result.WordName, streak); err != nil {
			return err
		}

		s.logger.Info("Card streak updated",
			zap.Int64("user_id", userID),
			zap.String("profile", profile),
			zap.String("word", result.WordName),
			zap.Int("streak", streak),
		)
	}
	return nil
}

func nextStreak(current int, correct bool, mode domain.SessionMode) int {
	switch {
	case !correct:
		return 0
	case mode == domain.ModeRepeat:
		return current
	default:
		return current + 1
	}
}

func (s *LearningService) logSession(userID int64, profile string, session *domain.LearningSession) {
	_, total := session.Progress()
	s.logger.Info("Learning session created",
		zap.Int64("user_id", userID),
		zap.String("profile", profile),
		zap.String("mode", string(session.Mode())),
		zap.Int("cards", total),
		zap.Int("start_index", session.CurrentSetStartIndex()),
		zap.Int("total_sets", session.TotalSets()),
	)
}
