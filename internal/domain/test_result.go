package domain

// TestResult is the outcome of testing one card
type TestResult struct {
	WordName       string
	IsCorrect      bool
	UserAnswer     *string
	ExpectedAnswer *string
}

// NewWrittenResult creates a result for a typed answer
func NewWrittenResult(wordName string, isCorrect bool, userAnswer, expectedAnswer string) TestResult {
	return TestResult{
		WordName:       wordName,
		IsCorrect:      isCorrect,
		UserAnswer:     &userAnswer,
		ExpectedAnswer: &expectedAnswer,
	}
}

// NewSelfReviewResult creates a result graded by the learner.
// Self review carries neither the user's nor the expected answer.
func NewSelfReviewResult(wordName string, isCorrect bool) TestResult {
	return TestResult{
		WordName:  wordName,
		IsCorrect: isCorrect,
	}
}
