package handler

import (
	"strings"

	"linguahouse/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()

	// Ensure user exists
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("Wrong password")
		}

		if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(msgInternalError)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n🏠 Main menu\n\nStart with /profile <language>, then see /help", mainMenuMarkup())
	}

	// User is authorized, handle based on state
	switch h.GetState(userID).State {
	case domain.StateWaitingCard:
		return h.addCard(ctx, c, text)
	case domain.StateReviewInverse:
		return c.Send("Save or skip the generated cards first", inverseMarkup())
	}

	if active := h.sessions.Get(userID); active != nil {
		return h.handleAnswer(ctx, c, active, text)
	}

	return c.Send("Use /add to create a card or /learn to study. See /help", mainMenuMarkup())
}

// commandArgs returns the whitespace separated arguments of a command
func commandArgs(c tele.Context) []string {
	if c.Callback() != nil {
		return nil
	}
	return strings.Fields(c.Data())
}

// commandPayload strips the leading command from a message, keeping line breaks
func commandPayload(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	i := strings.IndexFunc(text, func(r rune) bool { return r == ' ' || r == '\n' || r == '\t' })
	if i == -1 {
		return ""
	}
	return strings.TrimSpace(text[i:])
}
