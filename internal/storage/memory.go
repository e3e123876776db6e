package storage

import (
	"sync"

	"github.com/niyarrbarman/automanim/internal/model"
)

// MemoryStore is the in-process Store implementation. A single mutex covers
// both maps; each operation is one short critical section. No atomicity is
// guaranteed across calls: an append followed by a read from another goroutine
// needs its own synchronization if a combined view matters.
type MemoryStore struct {
	mu       sync.Mutex
	messages map[string][]model.Message
	settings map[string]model.VideoSettings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make(map[string][]model.Message),
		settings: make(map[string]model.VideoSettings),
	}
}

func (m *MemoryStore) AppendMessage(sessionID, role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages[sessionID] = append(m.messages[sessionID], model.Message{
		Role:    role,
		Content: content,
	})
}

func (m *MemoryStore) GetMessages(sessionID string) []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.messages[sessionID]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

func (m *MemoryStore) SetVideoSettings(sessionID string, settings model.VideoSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[sessionID] = settings
}

func (m *MemoryStore) GetVideoSettings(sessionID string) model.VideoSettings {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.settings[sessionID]; ok {
		return s
	}
	return model.DefaultVideoSettings()
}

func (m *MemoryStore) ClearSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.messages, sessionID)
	delete(m.settings, sessionID)
}
