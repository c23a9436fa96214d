// Package session provides session persistence for conversation state.
// The store contract pushes conflict detection to the backend: every
// message append carries the version the caller last observed, and a
// mismatch fails with a version conflict instead of silently interleaving
// writers.
package session

import (
	"context"
	"io"

	"github.com/guruai/guruai/pkg/models"
)

// Store is the abstraction over a keyed store of conversation state.
type Store interface {
	io.Closer

	// Create creates a new empty session owned by the given user.
	// The returned session has version 1 and no messages.
	Create(ctx context.Context, userID string) (*models.Session, error)

	// Get retrieves a session with its full ordered message history.
	// Fails with a session-not-found error for unknown IDs.
	Get(ctx context.Context, sessionID string) (*models.Session, error)

	// AppendMessage appends a message if the session's current version
	// matches expectedVersion, and returns the new version. A mismatch
	// fails with a version conflict; the caller should refetch and retry
	// the whole operation.
	AppendMessage(ctx context.Context, sessionID string, msg models.Message, expectedVersion int64) (int64, error)

	// ReplaceContext replaces the session's active context whole
	// (last-write-wins) and bumps the version.
	ReplaceContext(ctx context.Context, sessionID string, sctx models.SessionContext) error
}

// Compile-time verification that both backends satisfy the contract.
var (
	_ Store = (*DB)(nil)
	_ Store = (*MemoryStore)(nil)
)
