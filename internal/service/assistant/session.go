package assistant

import (
	"sync"
	"time"

	"github.com/felano-technologies/poultrycare/pkg/clients/anthropic"
)

// SessionStore keeps per-farm conversation histories with explicit TTL
// eviction, so abandoned chats do not accumulate in process memory.
type SessionStore struct {
	sessions map[string]session
	ttl      time.Duration
	mu       sync.Mutex
	now      func() time.Time
}

type session struct {
	history   []anthropic.Message
	expiresAt time.Time
}

// NewSessionStore creates a session store whose entries expire after ttl of
// inactivity.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// History returns the live conversation history for a farm, or nil when the
// session is absent or expired.
func (s *SessionStore) History(farmID string) []anthropic.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[farmID]
	if !ok {
		return nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, farmID)
		return nil
	}
	return entry.history
}

// Append stores the updated history and refreshes the session's expiry.
// Expired entries for other farms are swept opportunistically.
func (s *SessionStore) Append(farmID string, history []anthropic.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, key)
		}
	}

	s.sessions[farmID] = session{
		history:   history,
		expiresAt: now.Add(s.ttl),
	}
}

// Clear removes a farm's session.
func (s *SessionStore) Clear(farmID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, farmID)
}
