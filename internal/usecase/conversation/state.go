// Package conversation tracks the most recent inbound message per user.
package conversation

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrSuperseded is returned when a newer message from the same user arrived
// while work for an older one was still in flight.
var ErrSuperseded = errors.New("conversation: superseded by a newer message")

// State maps user id -> id of the last message received from that user.
// Entries are never removed; lookups are always keyed by the current user.
type State struct {
	mu     sync.RWMutex
	latest map[string]string
}

func NewState() *State {
	return &State{
		latest: make(map[string]string),
	}
}

// Record unconditionally overwrites the latest message id for the user.
func (s *State) Record(userID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[userID] = messageID
}

// IsCurrent reports whether messageID is still the latest one seen for the user.
func (s *State) IsCurrent(userID, messageID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest, ok := s.latest[userID]
	return ok && latest == messageID
}

// Check is IsCurrent as an error: nil when current, ErrSuperseded otherwise.
func (s *State) Check(userID, messageID string) error {
	if s.IsCurrent(userID, messageID) {
		return nil
	}
	return ErrSuperseded
}
