package handler

import (
	"linguahouse/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgPasswordPrompt = "Hi! This bot is private. Send the password to continue:"
	msgNoProfile      = "Choose a profile first: /profile <language>"
	msgHelp           = `Commands:
/profile <language> - create or select a profile
/profile - list your profiles
/deleteprofile <language> - delete a profile with its cards
/settings [cards_per_set] [manual|self_review] [streak] - show or change settings
/add word | definition | translated definition | translation1, translation2
/delete <word> - delete a card
/learn [n] - study unlearned cards from card n
/test - test all unlearned cards
/repeat - revise learned cards
/stats - profile statistics
/stop - stop the running session`
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgInternalError)
	}

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}

	if !authorized {
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingPassword})
		return c.Send(msgPasswordPrompt)
	}
	h.ResetState(userID)

	// Show main menu
	text := "🏠 Main menu"
	if profile := h.GetState(userID).Profile; profile != "" {
		text += "\n\nProfile: " + profile
	}
	return h.reply(c, text+"\n\nChoose an action or see /help", mainMenuMarkup())
}

// handleHelp lists the commands
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(msgHelp)
}
