package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager is the registry of live sessions, keyed by game ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	aiDelay time.Duration
}

func NewManager(aiDelay time.Duration) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		aiDelay:  aiDelay,
	}
}

// Create starts a new session under a fresh game ID.
func (m *Manager) Create(playerName, botName string) *Session {
	s := New(uuid.NewString(), playerName, botName, m.aiDelay)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops the session from the registry and cancels any pending
// bot move.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return
	}
	s.mu.Lock()
	s.aiGen++
	if s.aiTimer != nil {
		s.aiTimer.Stop()
		s.aiTimer = nil
	}
	s.mu.Unlock()
}
