package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/pkg/models"
)

// DB is the SQLite-backed session store.
type DB struct {
	conn *sql.DB
	path string
}

// DefaultDBPath returns the XDG data path for the session database.
func DefaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "guruai", "sessions.db")
}

// Open opens an SQLite session store at the given path, creating parent
// directories as needed. WAL mode is enabled for concurrent reads.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the path to the database file.
func (db *DB) Path() string {
	return db.path
}

// migrate applies the schema.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			context    TEXT NOT NULL DEFAULT '{}',
			version    INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS messages (
			id             TEXT PRIMARY KEY,
			session_id     TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq            INTEGER NOT NULL,
			role           TEXT NOT NULL,
			content        TEXT NOT NULL,
			attachment_ref TEXT NOT NULL DEFAULT '',
			agent_id       TEXT NOT NULL DEFAULT '',
			created_at     DATETIME NOT NULL,
			UNIQUE(session_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, seq);
	`)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Create creates a new empty session owned by the given user.
func (db *DB) Create(ctx context.Context, userID string) (*models.Session, error) {
	s := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, context, version, created_at)
		VALUES (?, ?, '{}', 1, ?)
	`, s.ID, s.UserID, s.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// Get retrieves a session with its full ordered message history.
func (db *DB) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, user_id, context, version, created_at
		FROM sessions WHERE id = ?
	`, sessionID)

	var (
		s          models.Session
		contextRaw string
		createdAt  string
	)
	if err := row.Scan(&s.ID, &s.UserID, &contextRaw, &s.Version, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, guruerr.Newf(guruerr.KindSessionNotFound, "session.get", "session %s not found", sessionID)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if err := json.Unmarshal([]byte(contextRaw), &s.Context); err != nil {
		return nil, fmt.Errorf("decode session context: %w", err)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, role, content, attachment_ref, agent_id, created_at
		FROM messages WHERE session_id = ? ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m  models.Message
			ts string
		)
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.AttachmentRef, &m.AgentID, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		s.Messages = append(s.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return &s, nil
}

// AppendMessage appends a message under an optimistic version check.
func (db *DB) AppendMessage(ctx context.Context, sessionID string, msg models.Message, expectedVersion int64) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var current int64
	row := tx.QueryRowContext(ctx, `SELECT version FROM sessions WHERE id = ?`, sessionID)
	if err := row.Scan(&current); err != nil {
		if err == sql.ErrNoRows {
			return 0, guruerr.Newf(guruerr.KindSessionNotFound, "session.append", "session %s not found", sessionID)
		}
		return 0, fmt.Errorf("read session version: %w", err)
	}
	if current != expectedVersion {
		return 0, guruerr.Newf(guruerr.KindVersionConflict, "session.append",
			"session %s at version %d, expected %d", sessionID, current, expectedVersion)
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, seq, role, content, attachment_ref, agent_id, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE session_id = ?), ?, ?, ?, ?, ?)
	`, msg.ID, sessionID, sessionID, string(msg.Role), msg.Content, msg.AttachmentRef, string(msg.AgentID),
		msg.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	newVersion := current + 1
	if _, err := tx.ExecContext(ctx, `UPDATE sessions SET version = ? WHERE id = ?`, newVersion, sessionID); err != nil {
		return 0, fmt.Errorf("bump session version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return newVersion, nil
}

// ReplaceContext replaces the session's active context whole.
func (db *DB) ReplaceContext(ctx context.Context, sessionID string, sctx models.SessionContext) error {
	raw, err := json.Marshal(sctx)
	if err != nil {
		return fmt.Errorf("encode session context: %w", err)
	}

	res, err := db.conn.ExecContext(ctx, `
		UPDATE sessions SET context = ?, version = version + 1 WHERE id = ?
	`, string(raw), sessionID)
	if err != nil {
		return fmt.Errorf("replace context: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace context: %w", err)
	}
	if n == 0 {
		return guruerr.Newf(guruerr.KindSessionNotFound, "session.context", "session %s not found", sessionID)
	}
	return nil
}
