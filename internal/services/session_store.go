package services

import (
	"sync"
	"time"

	"shuttle/internal/domain"

	"github.com/google/uuid"
)

// SessionStore keeps admin sessions in process memory. A restart empties it,
// which logs every admin out.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]domain.Session{}}
}

func (s *SessionStore) Create(username string, now time.Time, ttl time.Duration) domain.Session {
	sess := domain.Session{
		ID:       uuid.NewString(),
		Username: username,
		IssuedAt: now,
	}
	if ttl > 0 {
		sess.ExpiresAt = now.Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session if it exists and has not expired. Expired
// sessions are dropped on lookup.
func (s *SessionStore) Get(id string, now time.Time) (domain.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Session{}, false
	}
	if !sess.LoggedIn(now) {
		s.Delete(id)
		return domain.Session{}, false
	}
	return sess, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
