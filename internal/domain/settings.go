package domain

// TestMethod is how a learner answers during the test phase
type TestMethod string

const (
	TestMethodManual     TestMethod = "manual"
	TestMethodSelfReview TestMethod = "self_review"
)

// ParseTestMethod parses a test method name
func ParseTestMethod(s string) (TestMethod, error) {
	switch TestMethod(s) {
	case TestMethodManual, TestMethodSelfReview:
		return TestMethod(s), nil
	}
	return "", NewValidationError("test_method", "must be 'manual' or 'self_review', got '"+s+"'")
}

// CardSettings control how a profile's cards are studied
type CardSettings struct {
	CardsPerSet int
	TestMethod  TestMethod
	// StreakLength is the streak at which a card counts as learned
	StreakLength int
}

// DefaultCardSettings returns the settings of a new profile
func DefaultCardSettings() CardSettings {
	return CardSettings{
		CardsPerSet:  10,
		TestMethod:   TestMethodManual,
		StreakLength: 5,
	}
}

// Validate checks settings bounds
func (s CardSettings) Validate() error {
	if s.CardsPerSet < 1 || s.CardsPerSet > 100 {
		return NewValidationError("cards_per_set", "must be between 1 and 100")
	}
	if _, err := ParseTestMethod(string(s.TestMethod)); err != nil {
		return err
	}
	if s.StreakLength < 1 || s.StreakLength > 50 {
		return NewValidationError("streak_length", "must be between 1 and 50")
	}
	return nil
}
