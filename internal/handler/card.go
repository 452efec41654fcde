package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linguahouse/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const addCardFormat = `Send the card as:
word [reading] | definition | translated definition | translation1, translation2 | straight|reverse

Each next line adds a meaning:
definition | translated definition | translation1, translation2`

// handleAdd handles /add, either with the card inline or as the next message
func (h *Handler) handleAdd(c tele.Context) error {
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

	if payload := commandPayload(c.Text()); payload != "" {
		return h.addCard(ctx, c, payload)
	}

	state := h.GetState(userID)
	state.State = domain.StateWaitingCard
	h.SetState(userID, state)

	return c.Send(addCardFormat, inlineMarkup([]tele.Btn{btnCancel}))
}

// addCard parses, stores and inverts a card typed by the user
func (h *Handler) addCard(ctx context.Context, c tele.Context, text string) error {
	userID := c.Sender().ID

	profile, err := h.currentProfile(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to resolve profile", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}
	if profile == "" {
		h.ResetState(userID)
		return c.Send(msgNoProfile)
	}

	card, err := parseCardInput(text)
	if err == nil {
		err = h.cardService.SaveCard(ctx, userID, profile, card)
	}
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Send(fmt.Sprintf("❌ %s %s\n\n%s", verr.Field, verr.Message, addCardFormat))
		}
		h.logger.Error("Failed to save card",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("profile", profile),
		)
		return c.Send(msgInternalError)
	}

	h.logger.Info("Card saved",
		zap.Int64("user_id", userID),
		zap.String("profile", profile),
		zap.String("word", card.Word.Name),
	)

	inverted, err := h.cardService.GetInvertedCards(ctx, userID, profile, card)
	if err != nil {
		h.logger.Error("Failed to build inverse cards", zap.Error(err), zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Saved: " + card.Word.Name)
	}
	if len(inverted) == 0 {
		h.ResetState(userID)
		return c.Send("✅ Saved: " + card.Word.Name)
	}

	state := h.GetState(userID)
	state.State = domain.StateReviewInverse
	state.PendingCards = inverted
	h.SetState(userID, state)

	previews := make([]string, 0, len(inverted))
	for _, inv := range inverted {
		previews = append(previews, renderCard(inv))
	}
	return c.Send(
		fmt.Sprintf("✅ Saved: %s\n\nReverse cards:\n\n%s", card.Word.Name, strings.Join(previews, "\n\n")),
		inverseMarkup(),
	)
}

// handleSaveInverse stores the reviewed inverse cards
func (h *Handler) handleSaveInverse(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	state := h.GetState(userID)
	if state.State != domain.StateReviewInverse || len(state.PendingCards) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing to save"})
	}

	if err := h.cardService.SaveCards(ctx, userID, state.Profile, state.PendingCards); err != nil {
		h.logger.Error("Failed to save inverse cards",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("profile", state.Profile),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError, ShowAlert: true})
	}

	h.ResetState(userID)
	return h.reply(c, fmt.Sprintf("💾 Saved %d reverse cards", len(state.PendingCards)))
}

// handleSkipInverse discards the inverse cards
func (h *Handler) handleSkipInverse(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.reply(c, "⏭ Reverse cards skipped")
}

// handleDelete handles /delete <word>
func (h *Handler) handleDelete(c tele.Context) error {
	userID := c.Sender().ID
	ctx, cancel := requestContext()
	defer cancel()

	word := commandPayload(c.Text())
	if word == "" {
		return c.Send("Usage: /delete <word>")
	}

	profile, err := h.currentProfile(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to resolve profile", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}
	if profile == "" {
		return c.Send(msgNoProfile)
	}

	if err := h.cardService.DeleteCard(ctx, userID, profile, word); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Send("Card not found: " + word)
		}
		h.logger.Error("Failed to delete card", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}

	return c.Send("🗑 Deleted: " + word)
}

func inverseMarkup() *tele.ReplyMarkup {
	return inlineMarkup([]tele.Btn{btnSaveInverse, btnSkipInverse})
}

// parseCardInput builds a straight or reverse card from the /add format.
// The first line holds the word, each further line another meaning.
func parseCardInput(text string) (domain.Card, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return domain.Card{}, domain.NewValidationError("card", "is empty")
	}

	head := splitFields(lines[0])
	if len(head) < 4 || len(head) > 5 {
		return domain.Card{}, domain.NewValidationError("card", "needs word, definition, translated definition and translations")
	}

	cardType := domain.CardTypeStraight
	if len(head) == 5 {
		parsed, err := domain.ParseCardType(head[4])
		if err != nil {
			return domain.Card{}, err
		}
		cardType = parsed
	}

	name, readings := splitReadings(head[0])
	word, err := domain.NewWord(name, readings)
	if err != nil {
		return domain.Card{}, err
	}

	first, err := parseMeaning(head[1:4])
	if err != nil {
		return domain.Card{}, err
	}
	meanings := []domain.Meaning{first}

	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) != 3 {
			return domain.Card{}, domain.NewValidationError("meaning", "needs definition, translated definition and translations")
		}
		m, err := parseMeaning(fields)
		if err != nil {
			return domain.Card{}, err
		}
		meanings = append(meanings, m)
	}

	card, err := domain.NewCard(cardType, word, meanings)
	if err != nil {
		return domain.Card{}, err
	}
	return *card, nil
}

func parseMeaning(fields []string) (domain.Meaning, error) {
	return domain.NewMeaning(fields[0], fields[1], splitList(fields[2]))
}

// splitReadings splits "word [r1, r2]" into the word and its readings
func splitReadings(s string) (string, []string) {
	open := strings.Index(s, "[")
	if open == -1 || !strings.HasSuffix(s, "]") {
		return strings.TrimSpace(s), nil
	}
	return strings.TrimSpace(s[:open]), splitList(s[open+1 : len(s)-1])
}

func splitFields(line string) []string {
	fields := strings.Split(line, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
