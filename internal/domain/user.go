package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingCard     UserState = "waiting_card"
	StateReviewInverse   UserState = "review_inverse"
	StateWaitingPassword UserState = "waiting_password"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State   UserState
	Profile string
	// PendingCards are generated inverse cards waiting for the user's decision
	PendingCards []Card
}
