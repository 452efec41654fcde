package domain

import "strings"

// LearningPhase is the sub-state of the current set
type LearningPhase string

const (
	PhaseStudy LearningPhase = "study"
	PhaseTest  LearningPhase = "test"
)

// SessionMode tells how finished sets affect card streaks
type SessionMode string

const (
	// ModeLearn walks unlearned cards in creation order
	ModeLearn SessionMode = "learn"
	// ModeTest tests all unlearned cards in random order
	ModeTest SessionMode = "test"
	// ModeRepeat revisits learned cards; correct answers keep the streak
	ModeRepeat SessionMode = "repeat"
)

// LearningSession walks a fixed snapshot of cards in sets of CardsPerSet.
// Each set is studied, then tested; a passed set advances, a failed one is retried.
// A session has a single owner and is not safe for concurrent use.
type LearningSession struct {
	allCards          []Card
	currentSetStart   int
	cardsPerSet       int
	phase             LearningPhase
	currentCardInSet  int
	testMethod        TestMethod
	mode              SessionMode
	testResults       []TestResult
	providedAnswers   []string
	currentCardFailed bool
}

// NewLearningSession creates a session over a copy of cards.
// startIndex is clamped to [0, len(cards)]; an index at the end yields a completed session.
func NewLearningSession(cards []Card, startIndex, cardsPerSet int, method TestMethod, mode SessionMode) (*LearningSession, error) {
	if cardsPerSet <= 0 {
		return nil, NewValidationError("cards_per_set", "must be greater than zero")
	}
	if _, err := ParseTestMethod(string(method)); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeLearn
	}

	snapshot := make([]Card, len(cards))
	for i, c := range cards {
		snapshot[i] = c.Clone()
	}

	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex > len(snapshot) {
		startIndex = len(snapshot)
	}

	return &LearningSession{
		allCards:        snapshot,
		currentSetStart: startIndex,
		cardsPerSet:     cardsPerSet,
		phase:           PhaseStudy,
		testMethod:      method,
		mode:            mode,
	}, nil
}

// AllCards returns the session's card snapshot
func (s *LearningSession) AllCards() []Card { return s.allCards }

// CardsPerSet returns the set size
func (s *LearningSession) CardsPerSet() int { return s.cardsPerSet }

// CurrentSetStartIndex returns the index of the first card of the current set
func (s *LearningSession) CurrentSetStartIndex() int { return s.currentSetStart }

// CurrentCardInSet returns the cursor within the current set
func (s *LearningSession) CurrentCardInSet() int { return s.currentCardInSet }

// Phase returns the current phase
func (s *LearningSession) Phase() LearningPhase { return s.phase }

// TestMethod returns how answers are given in the test phase
func (s *LearningSession) TestMethod() TestMethod { return s.testMethod }

// Mode returns the session mode
func (s *LearningSession) Mode() SessionMode { return s.mode }

// TestResults returns the results recorded for the current set
func (s *LearningSession) TestResults() []TestResult { return s.testResults }

// CurrentSet returns the cards of the current set
func (s *LearningSession) CurrentSet() []Card {
	if s.currentSetStart >= len(s.allCards) {
		return nil
	}
	end := s.currentSetStart + s.cardsPerSet
	if end > len(s.allCards) {
		end = len(s.allCards)
	}
	return s.allCards[s.currentSetStart:end]
}

// CurrentCard returns the card under the cursor, or nil when the set is exhausted
func (s *LearningSession) CurrentCard() *Card {
	set := s.CurrentSet()
	if s.currentCardInSet >= len(set) {
		return nil
	}
	return &set[s.currentCardInSet]
}

// AdvanceToNextCard moves the study cursor forward.
// It returns false on the last card of the set; call StartTestPhase then.
func (s *LearningSession) AdvanceToNextCard() bool {
	if s.phase != PhaseStudy {
		return false
	}
	if s.currentCardInSet+1 < len(s.CurrentSet()) {
		s.currentCardInSet++
		return true
	}
	return false
}

// StartTestPhase switches the current set to testing
func (s *LearningSession) StartTestPhase() {
	s.phase = PhaseTest
	s.resetCursor()
}

// IsStudyComplete reports whether the study cursor is on the last card
func (s *LearningSession) IsStudyComplete() bool {
	return s.phase == PhaseStudy && s.currentCardInSet+1 >= len(s.CurrentSet())
}

// IsTestComplete reports whether every card of the set has a result
func (s *LearningSession) IsTestComplete() bool {
	return s.phase == PhaseTest && len(s.testResults) >= len(s.CurrentSet())
}

// AddTestResult records a result for the current set.
// Callers add at most one result per card.
func (s *LearningSession) AddTestResult(result TestResult) {
	s.testResults = append(s.testResults, result)
}

// IsSetPassed reports whether the set was tested and every answer was correct
func (s *LearningSession) IsSetPassed() bool {
	if len(s.testResults) == 0 {
		return false
	}
	for _, r := range s.testResults {
		if !r.IsCorrect {
			return false
		}
	}
	return true
}

// AdvanceToNextSet moves to the next set after a pass.
// It returns false when no cards remain and the session is complete.
func (s *LearningSession) AdvanceToNextSet() bool {
	s.currentSetStart += s.cardsPerSet
	if s.currentSetStart < len(s.allCards) {
		s.phase = PhaseStudy
		s.resetCursor()
		return true
	}
	return false
}

// RetryCurrentSet restarts the current set from the study phase
func (s *LearningSession) RetryCurrentSet() {
	s.phase = PhaseStudy
	s.resetCursor()
}

// HasMoreCards reports whether the session still has a set to work on
func (s *LearningSession) HasMoreCards() bool {
	return s.currentSetStart < len(s.allCards)
}

// IsLastSet reports whether no cards follow the current set
func (s *LearningSession) IsLastSet() bool {
	return s.currentSetStart+s.cardsPerSet >= len(s.allCards)
}

// TotalSets returns the number of sets in the session
func (s *LearningSession) TotalSets() int {
	return (len(s.allCards) + s.cardsPerSet - 1) / s.cardsPerSet
}

// CurrentSetNumber returns the 1-based number of the current set
func (s *LearningSession) CurrentSetNumber() int {
	return s.currentSetStart/s.cardsPerSet + 1
}

// ProvidedAnswers returns the canonical answers already matched for the current card
func (s *LearningSession) ProvidedAnswers() []string { return s.providedAnswers }

// RecordProvidedAnswer consumes a canonical answer of the current card
func (s *LearningSession) RecordProvidedAnswer(answer string) {
	s.providedAnswers = append(s.providedAnswers, answer)
}

// MarkCurrentCardFailed records a wrong answer for the current card
func (s *LearningSession) MarkCurrentCardFailed() {
	s.currentCardFailed = true
}

// IsCurrentCardFailed reports whether the current card got a wrong answer
func (s *LearningSession) IsCurrentCardFailed() bool { return s.currentCardFailed }

// IsCurrentCardComplete reports whether the current test card needs no more answers
func (s *LearningSession) IsCurrentCardComplete() bool {
	card := s.CurrentCard()
	if card == nil {
		return false
	}
	return s.currentCardFailed || len(s.providedAnswers) >= card.RequiredAnswers()
}

// FinishCurrentCard records the written result of the current test card and moves on.
// It returns false when there is no current card or the session is not testing.
func (s *LearningSession) FinishCurrentCard() bool {
	card := s.CurrentCard()
	if s.phase != PhaseTest || card == nil || s.IsTestComplete() {
		return false
	}

	expected := ""
	if answers := card.AcceptableAnswers(); len(answers) > 0 {
		expected = answers[0]
	}
	s.AddTestResult(NewWrittenResult(card.Word.Name, !s.currentCardFailed, strings.Join(s.providedAnswers, ", "), expected))
	s.nextTestCard()
	return true
}

// RecordSelfReview records a self-graded result for the current test card and moves on
func (s *LearningSession) RecordSelfReview(result TestResult) bool {
	if s.phase != PhaseTest || s.CurrentCard() == nil || s.IsTestComplete() {
		return false
	}
	s.AddTestResult(result)
	s.nextTestCard()
	return true
}

// Progress returns the number of cards before the current set and the total card count
func (s *LearningSession) Progress() (done, total int) {
	return s.currentSetStart, len(s.allCards)
}

// nextTestCard keeps the cursor on the last card once the set is exhausted
func (s *LearningSession) nextTestCard() {
	if s.currentCardInSet+1 < len(s.CurrentSet()) {
		s.currentCardInSet++
	}
	s.providedAnswers = nil
	s.currentCardFailed = false
}

func (s *LearningSession) resetCursor() {
	s.currentCardInSet = 0
	s.testResults = nil
	s.providedAnswers = nil
	s.currentCardFailed = false
}
