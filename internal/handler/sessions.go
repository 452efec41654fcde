package handler

import (
	"sync"
	"time"

	"linguahouse/internal/domain"
)

// activeSession is a user's running learning session.
// mu serializes every step of the session; lastActive is guarded by the store.
type activeSession struct {
	mu         sync.Mutex
	session    *domain.LearningSession
	profile    string
	lastActive time.Time
}

// sessionStore keeps one learning session per user
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*activeSession
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[int64]*activeSession),
		now:      time.Now,
	}
}

// Start replaces the user's session with a new one
func (s *sessionStore) Start(userID int64, profile string, session *domain.LearningSession) *activeSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := &activeSession{
		session:    session,
		profile:    profile,
		lastActive: s.now(),
	}
	s.sessions[userID] = active
	return active
}

// Get returns the user's session and marks it active, or nil
func (s *sessionStore) Get(userID int64) *activeSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	active.lastActive = s.now()
	return active
}

// End removes the user's session if it is still the given one.
// A nil active removes whatever session the user has.
func (s *sessionStore) End(userID int64, active *activeSession) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[userID]
	if !ok || (active != nil && current != active) {
		return false
	}
	delete(s.sessions, userID)
	return true
}

// SweepIdle removes sessions not used for longer than maxIdle
func (s *sessionStore) SweepIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for userID, active := range s.sessions {
		if active.lastActive.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

// Len returns the number of running sessions
func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
