package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/srs"
	"github.com/mrezvani/vocaflash/internal/store"
)

// Manager tracks the live sessions by id. Sessions are in-memory only and
// disappear on process restart.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Controller)}
}

// Create starts a new session over the given cards and registers it.
func (m *Manager) Create(collectionID string, cards []models.Card, scheduler *srs.Scheduler, cardStore store.CardStore, opts ...Option) *Controller {
	id := uuid.NewString()
	ctrl := New(id, collectionID, cards, scheduler, cardStore, opts...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = ctrl
	return ctrl
}

// Get returns the session with the given id, or nil.
func (m *Manager) Get(id string) *Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Remove abandons and unregisters a session. Returns false if unknown.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	ctrl, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		ctrl.Abandon()
	}
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
