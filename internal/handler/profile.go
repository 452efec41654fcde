package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"linguahouse/internal/domain"
	"linguahouse/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleProfile lists profiles, or selects one and creates it when missing
func (h *Handler) handleProfile(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	language := strings.Join(commandArgs(c), " ")
	if language == "" {
		return h.listProfiles(c)
	}

	profile, err := h.profileService.GetProfile(ctx, userID, language)
	created := false
	if errors.Is(err, domain.ErrNotFound) {
		profile, err = h.profileService.CreateProfile(ctx, userID, language)
		created = err == nil
	}
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Send(fmt.Sprintf("❌ Language %s", verr.Message))
		}
		h.logger.Error("Failed to open profile", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}

	h.selectProfile(userID, profile.TargetLanguage)
	if created {
		return c.Send(fmt.Sprintf("✨ Profile %s created and selected. Add cards with /add", profile.TargetLanguage))
	}
	return c.Send(fmt.Sprintf("✅ Profile %s selected", profile.TargetLanguage), mainMenuMarkup())
}

func (h *Handler) listProfiles(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	profiles, err := h.profileService.ListProfiles(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to list profiles", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}
	if len(profiles) == 0 {
		return c.Send("No profiles yet. Create one: /profile <language>")
	}

	current := h.GetState(userID).Profile
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(profiles))
	for _, p := range profiles {
		text := p.TargetLanguage
		if p.TargetLanguage == current {
			text = "• " + text
		}
		rows = append(rows, markup.Row(markup.Data(text, profileCallbackPrefix+p.TargetLanguage)))
	}
	markup.Inline(rows...)

	return c.Send("🌍 Your profiles:", markup)
}

// handleProfileSelection selects a profile picked from the list
func (h *Handler) handleProfileSelection(c tele.Context, language string) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	profile, err := h.profileService.GetProfile(ctx, userID, language)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Profile not found", ShowAlert: true})
		}
		h.logger.Error("Failed to get profile", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}

	h.selectProfile(userID, profile.TargetLanguage)
	return h.reply(c, fmt.Sprintf("✅ Profile %s selected", profile.TargetLanguage), mainMenuMarkup())
}

// handleDeleteProfile handles /deleteprofile <language>
func (h *Handler) handleDeleteProfile(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	language := service.NormalizeLanguage(strings.Join(commandArgs(c), " "))
	if language == "" {
		return c.Send("Usage: /deleteprofile <language>")
	}

	if err := h.profileService.DeleteProfile(ctx, userID, language); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Send("Profile not found: " + language)
		}
		h.logger.Error("Failed to delete profile", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}

	if active := h.sessions.Get(userID); active != nil && active.profile == language {
		h.sessions.End(userID, active)
	}
	if h.GetState(userID).Profile == language {
		h.SetState(userID, &domain.StateData{State: domain.StateIdle})
	}

	return c.Send("🗑 Profile deleted: " + language)
}

// handleSettings shows or updates the card settings of the current profile
func (h *Handler) handleSettings(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	profile, err := h.currentProfile(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to resolve profile", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}
	if profile == "" {
		return c.Send(msgNoProfile)
	}

	settings, err := h.profileService.GetCardSettings(ctx, userID, profile)
	if err != nil {
		h.logger.Error("Failed to get settings", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}

	args := commandArgs(c)
	if len(args) == 0 {
		return c.Send(renderSettings(profile, *settings))
	}

	updated, err := parseSettingsArgs(*settings, args)
	if err == nil {
		err = h.profileService.UpdateCardSettings(ctx, userID, profile, updated)
	}
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Send(fmt.Sprintf("❌ %s %s", verr.Field, verr.Message))
		}
		h.logger.Error("Failed to update settings", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}

	h.logger.Info("Card settings updated",
		zap.Int64("user_id", userID),
		zap.String("profile", profile),
		zap.Int("cards_per_set", updated.CardsPerSet),
		zap.String("test_method", string(updated.TestMethod)),
		zap.Int("streak_length", updated.StreakLength),
	)
	return c.Send("✅ Saved\n\n" + renderSettings(profile, updated))
}

// handleStats shows card counts of the current profile
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	profile, err := h.currentProfile(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to resolve profile", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}
	if profile == "" {
		return h.reply(c, msgNoProfile)
	}

	stats, err := h.statsService.GetProfileStats(ctx, userID, profile)
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err), zap.Int64("user_id", userID))
		return h.reply(c, msgInternalError)
	}

	return h.reply(c, renderStats(profile, *stats), mainMenuMarkup())
}

// parseSettingsArgs applies positional arguments "cards_per_set method streak" to current.
// Trailing arguments may be omitted.
func parseSettingsArgs(current domain.CardSettings, args []string) (domain.CardSettings, error) {
	if len(args) > 3 {
		return current, domain.NewValidationError("settings", "expects at most 3 values")
	}

	updated := current
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return current, domain.NewValidationError("cards_per_set", "must be a number")
		}
		updated.CardsPerSet = n
	}
	if len(args) > 1 {
		method, err := domain.ParseTestMethod(args[1])
		if err != nil {
			return current, err
		}
		updated.TestMethod = method
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return current, domain.NewValidationError("streak_length", "must be a number")
		}
		updated.StreakLength = n
	}

	if err := updated.Validate(); err != nil {
		return current, err
	}
	return updated, nil
}
