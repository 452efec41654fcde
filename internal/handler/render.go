package handler

import (
	"fmt"
	"strings"

	"linguahouse/internal/domain"
)

// renderCard formats a card with all of its meanings
func renderCard(card domain.Card) string {
	var b strings.Builder

	b.WriteString("📖 " + card.Word.Name)
	if len(card.Word.Readings) > 0 {
		b.WriteString(" [" + strings.Join(card.Word.Readings, ", ") + "]")
	}
	if card.Type == domain.CardTypeReverse {
		b.WriteString(" ↩️")
	}
	b.WriteString("\n")

	for i, m := range card.Meanings {
		fmt.Fprintf(&b, "\n%d. %s\n   %s\n", i+1, m.Definition, m.TranslatedDefinition)
		if len(m.WordTranslations) > 0 {
			b.WriteString("   → " + strings.Join(m.WordTranslations, ", ") + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderStudyCard formats the current study card with its position
func renderStudyCard(s *domain.LearningSession) string {
	card := s.CurrentCard()
	if card == nil {
		return "Nothing to study"
	}
	return fmt.Sprintf("Set %d/%d · card %d/%d\n\n%s",
		s.CurrentSetNumber(), s.TotalSets(),
		s.CurrentCardInSet()+1, len(s.CurrentSet()),
		renderCard(*card),
	)
}

// renderTestPrompt formats the question for the current test card
func renderTestPrompt(s *domain.LearningSession) string {
	card := s.CurrentCard()
	if card == nil {
		return "Nothing to test"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 Set %d/%d · question %d/%d\n\n",
		s.CurrentSetNumber(), s.TotalSets(),
		len(s.TestResults())+1, len(s.CurrentSet()),
	)
	b.WriteString("❓ " + card.Word.Name)
	if len(card.Word.Readings) > 0 {
		b.WriteString(" [" + strings.Join(card.Word.Readings, ", ") + "]")
	}

	if s.TestMethod() == domain.TestMethodSelfReview {
		b.WriteString("\n\nDo you remember it?")
		return b.String()
	}

	required := card.RequiredAnswers()
	if required > 1 {
		fmt.Fprintf(&b, "\n\nType %d translations, one per message", required)
	} else {
		b.WriteString("\n\nType the translation")
	}
	return b.String()
}

// renderSetSummary formats the results of the tested set
func renderSetSummary(s *domain.LearningSession) string {
	results := s.TestResults()
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Set %d/%d: %d/%d correct\n", s.CurrentSetNumber(), s.TotalSets(), correct, len(results))
	for _, r := range results {
		if r.IsCorrect {
			b.WriteString("\n✅ " + r.WordName)
			continue
		}
		b.WriteString("\n❌ " + r.WordName)
		if r.ExpectedAnswer != nil && *r.ExpectedAnswer != "" {
			b.WriteString(" → " + *r.ExpectedAnswer)
		}
	}

	if s.IsSetPassed() {
		b.WriteString("\n\n🎉 Set passed!")
	} else {
		b.WriteString("\n\nSome answers were wrong, the set has to be repeated.")
	}
	return b.String()
}

// renderStats formats profile statistics
func renderStats(profile string, stats domain.ProfileStats) string {
	return fmt.Sprintf("📊 Profile %s\n\nCards: %d\nLearned: %d\nTo learn: %d",
		profile, stats.Total(), stats.Learned, stats.Unlearned)
}

// renderSettings formats card settings
func renderSettings(profile string, settings domain.CardSettings) string {
	return fmt.Sprintf("⚙️ Settings of %s\n\nCards per set: %d\nTest method: %s\nStreak to learn: %d\n\nChange with /settings <cards_per_set> <manual|self_review> <streak>",
		profile, settings.CardsPerSet, settings.TestMethod, settings.StreakLength)
}
