package handler

import (
	"context"
	"sync"
	"time"

	"linguahouse/internal/domain"
	"linguahouse/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 10 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot             *tele.Bot
	authService     *service.AuthService
	profileService  *service.ProfileService
	cardService     *service.CardService
	learningService *service.LearningService
	statsService    *service.StatsService
	logger          *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	sessions *sessionStore
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	profileService *service.ProfileService,
	cardService *service.CardService,
	learningService *service.LearningService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		authService:     authService,
		profileService:  profileService,
		cardService:     cardService,
		learningService: learningService,
		statsService:    statsService,
		logger:          logger,
		states:          make(map[int64]*domain.StateData),
		sessions:        newSessionStore(),
	}
}

// RegisterHandlers registers all bot handlers.
// Everything except /start and plain text goes through auth.
func (h *Handler) RegisterHandlers(auth tele.MiddlewareFunc) {
	h.bot.Handle("/start", h.handleStart)

	// Text messages carry the password before the user is authorized
	h.bot.Handle(tele.OnText, h.handleText)

	g := h.bot.Group()
	g.Use(auth)

	// Commands
	g.Handle("/help", h.handleHelp)
	g.Handle("/profile", h.handleProfile)
	g.Handle("/deleteprofile", h.handleDeleteProfile)
	g.Handle("/settings", h.handleSettings)
	g.Handle("/stats", h.handleStats)
	g.Handle("/add", h.handleAdd)
	g.Handle("/delete", h.handleDelete)
	g.Handle("/learn", h.handleLearn)
	g.Handle("/test", h.handleTest)
	g.Handle("/repeat", h.handleRepeat)
	g.Handle("/stop", h.handleStop)

	// Callback queries (inline buttons)
	g.Handle(&btnLearn, h.handleLearn)
	g.Handle(&btnTest, h.handleTest)
	g.Handle(&btnRepeat, h.handleRepeat)
	g.Handle(&btnStats, h.handleStats)
	g.Handle(&btnNext, h.handleNext)
	g.Handle(&btnStartTest, h.handleStartTest)
	g.Handle(&btnKnew, h.handleKnew)
	g.Handle(&btnForgot, h.handleForgot)
	g.Handle(&btnNextSet, h.handleNextSet)
	g.Handle(&btnRetrySet, h.handleRetrySet)
	g.Handle(&btnStop, h.handleStop)
	g.Handle(&btnSaveInverse, h.handleSaveInverse)
	g.Handle(&btnSkipInverse, h.handleSkipInverse)
	g.Handle(&btnCancel, h.handleCancel)
	g.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	g.Handle(tele.OnCallback, h.handleCallback)
}

// SweepIdleSessions drops learning sessions idle for longer than maxIdle
func (h *Handler) SweepIdleSessions(maxIdle time.Duration) int {
	removed := h.sessions.SweepIdle(maxIdle)
	if removed > 0 {
		h.logger.Info("Idle sessions removed",
			zap.Int("removed", removed),
			zap.Int("active", h.sessions.Len()),
		)
	}
	return removed
}

// GetState returns a copy of user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	cp := *state
	return &cp
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state, keeping the selected profile
func (h *Handler) ResetState(userID int64) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	profile := ""
	if state, exists := h.states[userID]; exists {
		profile = state.Profile
	}
	h.states[userID] = &domain.StateData{State: domain.StateIdle, Profile: profile}
}

// selectProfile makes profile the user's current one
func (h *Handler) selectProfile(userID int64, profile string) {
	state := h.GetState(userID)
	state.Profile = profile
	h.SetState(userID, state)
}

// currentProfile returns the selected profile.
// A user with a single profile gets it selected automatically.
func (h *Handler) currentProfile(ctx context.Context, userID int64) (string, error) {
	if profile := h.GetState(userID).Profile; profile != "" {
		return profile, nil
	}

	profiles, err := h.profileService.ListProfiles(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(profiles) != 1 {
		return "", nil
	}

	h.selectProfile(userID, profiles[0].TargetLanguage)
	return profiles[0].TargetLanguage, nil
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnLearn = tele.Btn{
		Unique: "learn",
		Text:   "📚 Learn",
	}
	btnTest = tele.Btn{
		Unique: "test",
		Text:   "📝 Test",
	}
	btnRepeat = tele.Btn{
		Unique: "repeat",
		Text:   "🔄 Repeat",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Stats",
	}
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "➡️ Next",
	}
	btnStartTest = tele.Btn{
		Unique: "start_test",
		Text:   "📝 Start test",
	}
	btnKnew = tele.Btn{
		Unique: "knew",
		Text:   "✅ Knew",
	}
	btnForgot = tele.Btn{
		Unique: "forgot",
		Text:   "❌ Forgot",
	}
	btnNextSet = tele.Btn{
		Unique: "next_set",
		Text:   "▶️ Next set",
	}
	btnRetrySet = tele.Btn{
		Unique: "retry_set",
		Text:   "🔁 Retry set",
	}
	btnStop = tele.Btn{
		Unique: "stop",
		Text:   "⏹ Stop",
	}
	btnSaveInverse = tele.Btn{
		Unique: "save_inverse",
		Text:   "💾 Save all",
	}
	btnSkipInverse = tele.Btn{
		Unique: "skip_inverse",
		Text:   "⏭ Skip",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnLearn, btnTest),
		menu.Row(btnRepeat, btnStats),
	)
	return menu
}

func inlineMarkup(rows ...[]tele.Btn) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	inline := make([]tele.Row, 0, len(rows))
	for _, btns := range rows {
		inline = append(inline, menu.Row(btns...))
	}
	menu.Inline(inline...)
	return menu
}
