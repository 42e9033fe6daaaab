package rest

import (
	"sync"

	"github.com/google/uuid"

	"listing-console-service/internal/core/port/usecases_port"
)

// SessionFactory builds the controller instance backing one client session.
type SessionFactory func(sessionID string) usecases_port.ListingSessionUseCase

// SessionManager hands out per-client listing controllers keyed by the
// X-Session-ID header. Filter state and query cache are owned exclusively by
// one session and never shared between clients.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]usecases_port.ListingSessionUseCase
	factory  SessionFactory
}

func NewSessionManager(factory SessionFactory) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]usecases_port.ListingSessionUseCase),
		factory:  factory,
	}
}

// Acquire returns the session for the given id, minting a fresh id when the
// supplied one is absent or not a UUID.
func (m *SessionManager) Acquire(sessionID string) (usecases_port.ListingSessionUseCase, string) {
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.New().String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok {
		return session, sessionID
	}
	session := m.factory(sessionID)
	m.sessions[sessionID] = session
	return session, sessionID
}
