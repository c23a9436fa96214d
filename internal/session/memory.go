package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/pkg/models"
)

// MemoryStore is an in-memory session store. It satisfies the same
// contract as the SQLite backend and exists for tests and ephemeral runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// Create creates a new empty session owned by the given user.
func (m *MemoryStore) Create(ctx context.Context, userID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
	m.sessions[s.ID] = s
	return copySession(s), nil
}

// Get retrieves a session with its full ordered message history.
func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, guruerr.Newf(guruerr.KindSessionNotFound, "session.get", "session %s not found", sessionID)
	}
	return copySession(s), nil
}

// AppendMessage appends a message under an optimistic version check.
func (m *MemoryStore) AppendMessage(ctx context.Context, sessionID string, msg models.Message, expectedVersion int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return 0, guruerr.Newf(guruerr.KindSessionNotFound, "session.append", "session %s not found", sessionID)
	}
	if s.Version != expectedVersion {
		return 0, guruerr.Newf(guruerr.KindVersionConflict, "session.append",
			"session %s at version %d, expected %d", sessionID, s.Version, expectedVersion)
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.Messages = append(s.Messages, msg)
	s.Version++
	return s.Version, nil
}

// ReplaceContext replaces the session's active context whole.
func (m *MemoryStore) ReplaceContext(ctx context.Context, sessionID string, sctx models.SessionContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return guruerr.Newf(guruerr.KindSessionNotFound, "session.context", "session %s not found", sessionID)
	}
	s.Context = sctx
	s.Version++
	return nil
}

// copySession deep-copies a session so callers cannot mutate store state.
func copySession(s *models.Session) *models.Session {
	out := *s
	out.Messages = make([]models.Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	out.Context.GradeLevels = append([]models.GradeLevel(nil), s.Context.GradeLevels...)
	return &out
}
