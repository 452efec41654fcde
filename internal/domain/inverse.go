package domain

import "time"

// InvertCard derives reverse-direction cards from the meanings of source.
//
// Every translation T of every meaning becomes a card named T whose meaning swaps the
// definitions and translates back to the source word. When existing holds a card named
// exactly T (case-sensitive), the inverted meaning is appended to a copy of it instead.
// Translations repeated across meanings collect on one card. Cards are returned in the
// order their translations first appear. Neither source nor existing is modified.
func InvertCard(source Card, existing map[string]Card, now time.Time) []Card {
	var order []string
	byName := make(map[string]*Card)

	for _, meaning := range source.Meanings {
		inverted := Meaning{
			Definition:           meaning.TranslatedDefinition,
			TranslatedDefinition: meaning.Definition,
			WordTranslations:     []string{source.Word.Name},
		}

		for _, translation := range meaning.WordTranslations {
			card, ok := byName[translation]
			if !ok {
				if found, exists := existing[translation]; exists {
					clone := found.Clone()
					card = &clone
				} else {
					card = &Card{
						Type:      source.Type.Opposite(),
						Word:      Word{Name: translation},
						CreatedAt: now,
					}
				}
				byName[translation] = card
				order = append(order, translation)
			}

			m := inverted
			m.WordTranslations = []string{source.Word.Name}
			card.Meanings = append(card.Meanings, m)
		}
	}

	cards := make([]Card, 0, len(order))
	for _, name := range order {
		cards = append(cards, *byName[name])
	}
	return cards
}
