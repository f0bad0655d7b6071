package repository

import (
	"context"
	"sync"
)

// SessionMapStorage is used when no Redis is configured.
type SessionMapStorage struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionMapStorage() *SessionMapStorage {
	return &SessionMapStorage{
		sessions: make(map[string]string),
	}
}

func (s *SessionMapStorage) GetUserIdBySession(_ context.Context, sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[sessionID]
	return v, ok
}

func (s *SessionMapStorage) StoreSession(_ context.Context, sessionID string, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = email
	return nil
}

func (s *SessionMapStorage) DeleteSession(_ context.Context, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.sessions[sessionID]; !found {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}
