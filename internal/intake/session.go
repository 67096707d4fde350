package intake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

// SessionManager holds in-flight wizard sessions in memory, keyed by UUID.
// Abandoned sessions age out after the TTL; nothing is ever persisted.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Wizard
	ttl      time.Duration
}

// DefaultSessionTTL bounds how long an abandoned form is kept.
const DefaultSessionTTL = 2 * time.Hour

// NewSessionManager creates a manager with the given TTL (DefaultSessionTTL
// when ttl <= 0).
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		sessions: make(map[string]*Wizard),
		ttl:      ttl,
	}
}

// Create starts a new wizard session and returns its ID.
func (m *SessionManager) Create(verdict *model.Verdict) (string, *Wizard) {
	id := uuid.New().String()
	w := New(verdict)

	m.mu.Lock()
	m.sessions[id] = w
	m.mu.Unlock()
	return id, w
}

// Get returns the session for id, if it exists and has not aged out.
func (m *SessionManager) Get(id string) (*Wizard, bool) {
	m.mu.RLock()
	w, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(w.UpdatedAt()) > m.ttl {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, false
	}
	return w, true
}

// Delete discards a session.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes expired sessions once. Returns the number removed.
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, w := range m.sessions {
		if time.Since(w.UpdatedAt()) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions on the given interval until ctx is done.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				zap.L().Debug("intake: swept expired sessions", zap.Int("removed", n))
			}
		}
	}
}
