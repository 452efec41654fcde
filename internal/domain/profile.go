package domain

import "time"

// Profile is one target language studied by a user
type Profile struct {
	ID             int64
	UserID         int64
	TargetLanguage string
	Settings       CardSettings
	CreatedAt      time.Time
}

// ProfileStats counts a profile's cards by learning progress
type ProfileStats struct {
	Learned   int
	Unlearned int
}

// Total returns the number of cards in the profile
func (s ProfileStats) Total() int {
	return s.Learned + s.Unlearned
}
