package models

import "time"

// Role identifies who produced a message within a session.
type Role string

const (
	// RoleUser marks messages sent by the teacher.
	RoleUser Role = "user"
	// RoleAgent marks messages produced by a specialist agent.
	RoleAgent Role = "agent"
)

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAgent
}

// Message is one turn in a session's conversation history.
// Messages are immutable once appended.
type Message struct {
	// ID is the unique identifier for this message.
	ID string `json:"id"`
	// Role identifies the producer (user or agent).
	Role Role `json:"role"`
	// Content is the text body of the message.
	Content string `json:"content"`
	// AttachmentRef points at a stored binary attachment, if any.
	AttachmentRef string `json:"attachment_ref,omitempty"`
	// AgentID identifies the specialist that produced the message when Role is agent.
	AgentID AgentID `json:"agent_id,omitempty"`
	// Timestamp is when the message was appended.
	Timestamp time.Time `json:"timestamp"`
}

// SessionContext is the active context carried across turns in a session.
// It is replaced whole (last-write-wins), never merged.
type SessionContext struct {
	// Language is the preferred output language (e.g. "marathi", "hindi_english").
	Language string `json:"language,omitempty"`
	// GradeLevels are the target grades for differentiated output.
	GradeLevels []GradeLevel `json:"grade_levels,omitempty"`
	// Subject is the subject area hint (e.g. "science", "auto").
	Subject string `json:"subject,omitempty"`
	// Region selects the cultural profile used to bias generation.
	Region string `json:"region,omitempty"`
}

// Session is a persisted conversation between one teacher and the system.
// It is mutated only by appending messages or replacing the context.
type Session struct {
	// ID is the opaque unique session identifier.
	ID string `json:"id"`
	// UserID is the owning teacher's identifier. All messages in the
	// session are attributable to this owner.
	UserID string `json:"user_id"`
	// Messages is the ordered conversation history.
	Messages []Message `json:"messages"`
	// Context is the active session context.
	Context SessionContext `json:"context"`
	// Version is the optimistic concurrency token, incremented on every mutation.
	Version int64 `json:"version"`
	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`
}

// LastMessage returns the most recently appended message, or nil for an
// empty session.
func (s *Session) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}
