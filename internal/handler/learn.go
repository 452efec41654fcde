package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"linguahouse/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const msgNoSession = "No running session. Start one with /learn, /test or /repeat"

type sessionFactory func(ctx context.Context, userID int64, profile string) (*domain.LearningSession, error)

// handleLearn handles /learn [n], studying unlearned cards from card n
func (h *Handler) handleLearn(c tele.Context) error {
	start := 1
	if args := commandArgs(c); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return c.Send("Usage: /learn [card number]")
		}
		start = n
	}

	return h.startSession(c, func(ctx context.Context, userID int64, profile string) (*domain.LearningSession, error) {
		return h.learningService.CreateLearningSession(ctx, userID, profile, start)
	})
}

// handleTest handles /test over all unlearned cards
func (h *Handler) handleTest(c tele.Context) error {
	return h.startSession(c, h.learningService.CreateTestSession)
}

// handleRepeat handles /repeat over learned cards
func (h *Handler) handleRepeat(c tele.Context) error {
	return h.startSession(c, h.learningService.CreateRepeatSession)
}

func (h *Handler) startSession(c tele.Context, create sessionFactory) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	profile, err := h.currentProfile(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to resolve profile", zap.Error(err), zap.Int64("user_id", userID))
		return h.reply(c, msgInternalError)
	}
	if profile == "" {
		return h.reply(c, msgNoProfile)
	}

	session, err := create(ctx, userID, profile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.SetState(userID, &domain.StateData{State: domain.StateIdle})
			return h.reply(c, msgNoProfile)
		}
		h.logger.Error("Failed to create session",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("profile", profile),
		)
		return h.reply(c, msgInternalError)
	}

	if !session.HasMoreCards() {
		h.sessions.End(userID, nil)
		return h.reply(c, "Nothing to study here. Add cards with /add", mainMenuMarkup())
	}

	if session.Mode() != domain.ModeLearn {
		session.StartTestPhase()
	}
	h.ResetState(userID)
	h.sessions.Start(userID, profile, session)

	return h.showCurrent(c, session, "")
}

// showCurrent shows the study card or the test question the session is at
func (h *Handler) showCurrent(c tele.Context, s *domain.LearningSession, prefix string) error {
	if s.Phase() == domain.PhaseTest {
		return h.sendTestPrompt(c, s, prefix)
	}

	next := btnNext
	if s.IsStudyComplete() {
		next = btnStartTest
	}
	return h.reply(c, withPrefix(prefix, renderStudyCard(s)), inlineMarkup([]tele.Btn{next}, []tele.Btn{btnStop}))
}

func (h *Handler) sendTestPrompt(c tele.Context, s *domain.LearningSession, prefix string) error {
	text := withPrefix(prefix, renderTestPrompt(s))
	if s.TestMethod() == domain.TestMethodSelfReview {
		return h.reply(c, text, inlineMarkup([]tele.Btn{btnKnew, btnForgot}, []tele.Btn{btnStop}))
	}
	return h.reply(c, text, inlineMarkup([]tele.Btn{btnStop}))
}

// handleNext moves to the next study card
func (h *Handler) handleNext(c tele.Context) error {
	active := h.sessions.Get(c.Sender().ID)
	if active == nil {
		return h.reply(c, msgNoSession, mainMenuMarkup())
	}
	active.mu.Lock()
	defer active.mu.Unlock()

	s := active.session
	if s.Phase() != domain.PhaseStudy {
		return c.Respond()
	}
	s.AdvanceToNextCard()
	return h.showCurrent(c, s, "")
}

// handleStartTest ends the study phase of the set
func (h *Handler) handleStartTest(c tele.Context) error {
	active := h.sessions.Get(c.Sender().ID)
	if active == nil {
		return h.reply(c, msgNoSession, mainMenuMarkup())
	}
	active.mu.Lock()
	defer active.mu.Unlock()

	s := active.session
	if s.Phase() == domain.PhaseStudy {
		s.StartTestPhase()
	}
	return h.showCurrent(c, s, "")
}

func (h *Handler) handleKnew(c tele.Context) error {
	return h.handleSelfReview(c, true)
}

func (h *Handler) handleForgot(c tele.Context) error {
	return h.handleSelfReview(c, false)
}

func (h *Handler) handleSelfReview(c tele.Context, knew bool) error {
	userID := c.Sender().ID
	active := h.sessions.Get(userID)
	if active == nil {
		return h.reply(c, msgNoSession, mainMenuMarkup())
	}
	active.mu.Lock()
	defer active.mu.Unlock()

	s := active.session
	card := s.CurrentCard()
	if s.Phase() != domain.PhaseTest || s.TestMethod() != domain.TestMethodSelfReview || card == nil || s.IsTestComplete() {
		return c.Respond()
	}

	result := h.learningService.ProcessSelfReview(userID, active.profile, card.Word.Name, knew)
	s.RecordSelfReview(result)

	feedback := "✅ " + card.Word.Name
	if !knew {
		feedback = fmt.Sprintf("❌ %s → %s", card.Word.Name, strings.Join(card.AcceptableAnswers(), ", "))
	}

	if s.IsTestComplete() {
		ctx, cancel := requestContext()
		defer cancel()
		return h.finishSet(ctx, c, userID, active, feedback)
	}
	return h.sendTestPrompt(c, s, feedback)
}

// handleAnswer grades a typed answer for the current test card
func (h *Handler) handleAnswer(ctx context.Context, c tele.Context, active *activeSession, text string) error {
	active.mu.Lock()
	defer active.mu.Unlock()

	s := active.session
	card := s.CurrentCard()
	if s.Phase() != domain.PhaseTest || card == nil || s.IsTestComplete() {
		return c.Send("Use the buttons to continue, or /stop")
	}
	if s.TestMethod() != domain.TestMethodManual {
		return c.Send("Answer with the buttons below the question")
	}

	ok, matched := h.learningService.CheckAnswer(s, text)
	if ok && !s.IsCurrentCardComplete() {
		left := card.RequiredAnswers() - len(s.ProvidedAnswers())
		return c.Send(fmt.Sprintf("✅ %s\n%d more to go", matched, left))
	}

	feedback := "✅ Correct: " + strings.Join(s.ProvidedAnswers(), ", ")
	if !ok {
		feedback = fmt.Sprintf("❌ Wrong. %s → %s", card.Word.Name, strings.Join(card.AcceptableAnswers(), ", "))
	}
	s.FinishCurrentCard()

	if s.IsTestComplete() {
		return h.finishSet(ctx, c, c.Sender().ID, active, feedback)
	}
	return h.sendTestPrompt(c, s, feedback)
}

// finishSet persists the streaks of a tested set and offers the next step.
// The caller holds active.mu.
func (h *Handler) finishSet(ctx context.Context, c tele.Context, userID int64, active *activeSession, feedback string) error {
	s := active.session

	if err := h.learningService.ProcessTestResults(ctx, userID, active.profile, s.TestResults(), s.Mode()); err != nil {
		h.logger.Error("Failed to save test results",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("profile", active.profile),
		)
		feedback += "\n\n⚠️ Progress could not be saved"
	}

	text := withPrefix(feedback, renderSetSummary(s))
	switch {
	case !s.IsSetPassed():
		return h.reply(c, text, inlineMarkup([]tele.Btn{btnRetrySet}, []tele.Btn{btnStop}))
	case !s.IsLastSet():
		return h.reply(c, text, inlineMarkup([]tele.Btn{btnNextSet}, []tele.Btn{btnStop}))
	default:
		h.sessions.End(userID, active)
		return h.reply(c, text+"\n\n🏁 Session complete!", mainMenuMarkup())
	}
}

// handleNextSet moves a passed session on to its next set
func (h *Handler) handleNextSet(c tele.Context) error {
	userID := c.Sender().ID
	active := h.sessions.Get(userID)
	if active == nil {
		return h.reply(c, msgNoSession, mainMenuMarkup())
	}
	active.mu.Lock()
	defer active.mu.Unlock()

	s := active.session
	if !s.IsTestComplete() || !s.IsSetPassed() {
		return c.Respond()
	}

	if !s.AdvanceToNextSet() {
		h.sessions.End(userID, active)
		return h.reply(c, "🏁 Session complete!", mainMenuMarkup())
	}
	if s.Mode() != domain.ModeLearn {
		s.StartTestPhase()
	}
	return h.showCurrent(c, s, "")
}

// handleRetrySet restarts the current set after a failed test
func (h *Handler) handleRetrySet(c tele.Context) error {
	active := h.sessions.Get(c.Sender().ID)
	if active == nil {
		return h.reply(c, msgNoSession, mainMenuMarkup())
	}
	active.mu.Lock()
	defer active.mu.Unlock()

	s := active.session
	if !s.IsTestComplete() {
		return c.Respond()
	}

	s.RetryCurrentSet()
	if s.Mode() != domain.ModeLearn {
		s.StartTestPhase()
	}
	return h.showCurrent(c, s, "")
}

// handleStop ends the running session
func (h *Handler) handleStop(c tele.Context) error {
	userID := c.Sender().ID
	if !h.sessions.End(userID, nil) {
		return h.reply(c, msgNoSession, mainMenuMarkup())
	}

	h.logger.Info("Session stopped", zap.Int64("user_id", userID))
	return h.reply(c, "⏹ Session stopped", mainMenuMarkup())
}

func withPrefix(prefix, text string) string {
	if prefix == "" {
		return text
	}
	return prefix + "\n\n" + text
}
