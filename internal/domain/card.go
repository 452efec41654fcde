package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxWordNameLength   = 200
	maxDefinitionLength = 1000
)

// CardType is the direction a card is studied in
type CardType string

const (
	// CardTypeStraight goes from the target language to the native one
	CardTypeStraight CardType = "straight"
	// CardTypeReverse goes from the native language to the target one
	CardTypeReverse CardType = "reverse"
)

// ParseCardType parses a card type, ignoring case
func ParseCardType(s string) (CardType, error) {
	switch CardType(strings.ToLower(strings.TrimSpace(s))) {
	case CardTypeStraight:
		return CardTypeStraight, nil
	case CardTypeReverse:
		return CardTypeReverse, nil
	}
	return "", NewValidationError("card_type", "must be 'straight' or 'reverse', got '"+s+"'")
}

// Opposite returns the other study direction
func (t CardType) Opposite() CardType {
	if t == CardTypeStraight {
		return CardTypeReverse
	}
	return CardTypeStraight
}

// Word is the text being learned with optional pronunciation hints
type Word struct {
	Name     string   `json:"name"`
	Readings []string `json:"readings"`
}

// NewWord creates a validated word
func NewWord(name string, readings []string) (Word, error) {
	if strings.TrimSpace(name) == "" {
		return Word{}, NewValidationError("word", "cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxWordNameLength {
		return Word{}, NewValidationError("word", "cannot exceed 200 characters")
	}
	return Word{Name: name, Readings: readings}, nil
}

// Meaning is one sense of a word with its translations
type Meaning struct {
	Definition           string   `json:"definition"`
	TranslatedDefinition string   `json:"translated_definition"`
	WordTranslations     []string `json:"word_translations"`
}

// NewMeaning creates a validated meaning
func NewMeaning(definition, translatedDefinition string, translations []string) (Meaning, error) {
	m := Meaning{
		Definition:           definition,
		TranslatedDefinition: translatedDefinition,
		WordTranslations:     translations,
	}
	if err := m.Validate(); err != nil {
		return Meaning{}, err
	}
	return m, nil
}

// Validate checks meaning fields
func (m Meaning) Validate() error {
	if strings.TrimSpace(m.Definition) == "" {
		return NewValidationError("definition", "cannot be empty")
	}
	if strings.TrimSpace(m.TranslatedDefinition) == "" {
		return NewValidationError("translated_definition", "cannot be empty")
	}
	if !hasTranslation(m.WordTranslations) {
		return NewValidationError("word_translations", "need at least one translation")
	}
	if utf8.RuneCountInString(m.Definition) > maxDefinitionLength {
		return NewValidationError("definition", "cannot exceed 1000 characters")
	}
	if utf8.RuneCountInString(m.TranslatedDefinition) > maxDefinitionLength {
		return NewValidationError("translated_definition", "cannot exceed 1000 characters")
	}
	return nil
}

// Card is a flashcard owned by a profile
type Card struct {
	ID        *int64
	Type      CardType
	Word      Word
	Meanings  []Meaning
	Streak    int
	CreatedAt time.Time
}

// NewCard creates a validated card with zero streak
func NewCard(cardType CardType, word Word, meanings []Meaning) (*Card, error) {
	c := &Card{
		Type:      cardType,
		Word:      word,
		Meanings:  meanings,
		CreatedAt: time.Now(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the card and all of its meanings
func (c *Card) Validate() error {
	if _, err := ParseCardType(string(c.Type)); err != nil {
		return err
	}
	if _, err := NewWord(c.Word.Name, c.Word.Readings); err != nil {
		return err
	}
	if len(c.Meanings) == 0 {
		return NewValidationError("meanings", "card must have at least one meaning")
	}
	for _, m := range c.Meanings {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if c.Streak < 0 {
		return NewValidationError("streak", "cannot be negative")
	}
	return nil
}

// SetStreak sets the streak counter
func (c *Card) SetStreak(streak int) error {
	if streak < 0 {
		return NewValidationError("streak", "cannot be negative")
	}
	c.Streak = streak
	return nil
}

// Clone returns a deep copy of the card
func (c Card) Clone() Card {
	out := c
	if c.ID != nil {
		id := *c.ID
		out.ID = &id
	}
	out.Word.Readings = cloneStrings(c.Word.Readings)
	if c.Meanings != nil {
		out.Meanings = make([]Meaning, len(c.Meanings))
		for i, m := range c.Meanings {
			m.WordTranslations = cloneStrings(m.WordTranslations)
			out.Meanings[i] = m
		}
	}
	return out
}

// AcceptableAnswers returns the distinct word translations of all meanings in order
func (c Card) AcceptableAnswers() []string {
	var answers []string
	seen := make(map[string]bool)
	for _, m := range c.Meanings {
		for _, t := range m.WordTranslations {
			if seen[t] {
				continue
			}
			seen[t] = true
			answers = append(answers, t)
		}
	}
	return answers
}

// RequiredAnswers returns how many answers complete the card in a written test.
// Straight cards need one answer per meaning, reverse cards one per distinct translation.
func (c Card) RequiredAnswers() int {
	total := len(c.AcceptableAnswers())
	required := total
	if c.Type == CardTypeStraight {
		required = len(c.Meanings)
	}
	if required > total {
		required = total
	}
	return required
}

func hasTranslation(translations []string) bool {
	for _, t := range translations {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
