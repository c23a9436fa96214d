package models

import "fmt"

// Modality is one kind of input present on a request.
type Modality string

const (
	// ModalityText indicates the request carries a text body.
	ModalityText Modality = "text"
	// ModalityImage indicates the request carries an image attachment.
	ModalityImage Modality = "image"
	// ModalityAudio indicates the request carries an audio attachment.
	ModalityAudio Modality = "audio"
)

// Valid returns true if the modality is a known value.
func (m Modality) Valid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityAudio:
		return true
	default:
		return false
	}
}

// AgentID identifies a specialist agent in the closed registry.
type AgentID string

const (
	// AgentWorksheet is the worksheet processor specialist.
	AgentWorksheet AgentID = "worksheet_processor"
	// AgentContent is the local content generator specialist.
	AgentContent AgentID = "content_generator"
	// AgentKnowledge is the knowledge base specialist.
	AgentKnowledge AgentID = "knowledge_base"
	// AgentVisual is the visual aid generator specialist.
	AgentVisual AgentID = "visual_aid_generator"
	// AgentAssessment is the assessment and planning specialist.
	AgentAssessment AgentID = "assessment_planner"
)

// Attachment is a binary payload carried on a request.
type Attachment struct {
	// ContentType is the declared MIME type (e.g. "image/jpeg").
	ContentType string `json:"content_type"`
	// Data is the raw payload bytes.
	Data []byte `json:"-"`
}

// Size returns the payload size in bytes.
func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// RequestEnvelope is the unit the coordinator routes to a specialist.
type RequestEnvelope struct {
	// SessionID names the session this request belongs to.
	SessionID string `json:"session_id"`
	// Text is the teacher's request text, if any.
	Text string `json:"text,omitempty"`
	// Attachment is the binary payload, if any.
	Attachment *Attachment `json:"-"`
	// Modalities lists the input kinds present on the request.
	Modalities []Modality `json:"modalities"`
	// Intent is the optional declared skill hint (e.g. "explain_concept").
	Intent string `json:"intent,omitempty"`
	// Context carries language, target grades and subject for this request.
	Context SessionContext `json:"context"`
}

// HasModality reports whether the given modality is present.
func (e *RequestEnvelope) HasModality(m Modality) bool {
	for _, have := range e.Modalities {
		if have == m {
			return true
		}
	}
	return false
}

// Validate checks the envelope invariants: a session reference, at least
// one known modality, and a well-formed grade set when one is given.
func (e *RequestEnvelope) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("missing session id")
	}
	if len(e.Modalities) == 0 {
		return fmt.Errorf("no input modalities present")
	}
	for _, m := range e.Modalities {
		if !m.Valid() {
			return fmt.Errorf("unknown modality %q", m)
		}
	}
	if len(e.Context.GradeLevels) > 0 {
		if err := ValidateGrades(e.Context.GradeLevels); err != nil {
			return err
		}
	}
	return nil
}

// AgentResponse is the uniform envelope the coordinator returns for any
// specialist, regardless of which one handled the request.
type AgentResponse struct {
	// AgentID identifies the specialist that produced the response.
	AgentID AgentID `json:"agent_id"`
	// Text is the specialist's textual reply.
	Text string `json:"text,omitempty"`
	// Worksheets carries the multi-part worksheet output when the
	// worksheet processor handled the request.
	Worksheets *ResponseEnvelope `json:"worksheets,omitempty"`
}
