package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/internal/pipeline"
	"github.com/guruai/guruai/pkg/models"
)

// AssessmentAgent produces lesson plans, reading assessments and progress
// checkpoints for multi-grade classrooms.
type AssessmentAgent struct {
	gen    capability.Generator
	prompt promptSpec
}

var _ Agent = (*AssessmentAgent)(nil)

// NewAssessmentAgent creates the assessment and planning specialist.
func NewAssessmentAgent(gen capability.Generator) (*AssessmentAgent, error) {
	if gen == nil {
		return nil, fmt.Errorf("assessment agent requires a generator")
	}
	spec, err := promptFor(models.AgentAssessment)
	if err != nil {
		return nil, err
	}
	return &AssessmentAgent{gen: gen, prompt: spec}, nil
}

// ID implements Agent.
func (a *AssessmentAgent) ID() models.AgentID { return models.AgentAssessment }

// Skills implements Agent.
func (a *AssessmentAgent) Skills() []string { return a.prompt.Skills }

// Handle builds the requested plan or assessment. Audio attachments are
// validated against the storage bound; transcription happens outside the
// orchestration core, so the assessment works from the passage text the
// request carries alongside the recording.
func (a *AssessmentAgent) Handle(ctx context.Context, env *models.RequestEnvelope) (*models.AgentResponse, error) {
	if env.HasModality(models.ModalityAudio) {
		if err := validateAudio(env.Attachment); err != nil {
			return nil, err
		}
	}
	if err := requireText("specialist.assessment", env); err != nil {
		return nil, err
	}

	instruction := a.prompt.Instruction
	if len(env.Context.GradeLevels) > 1 {
		instruction += fmt.Sprintf("\nStructure the plan for grades %s sharing one classroom.",
			joinGrades(env.Context.GradeLevels))
	}

	text, err := generateText(ctx, a.gen, instruction, env, nil)
	if err != nil {
		return nil, err
	}
	return &models.AgentResponse{AgentID: models.AgentAssessment, Text: text}, nil
}

// validateAudio enforces the audio storage bound at the agent's ingest.
func validateAudio(att *models.Attachment) error {
	if att == nil || att.Size() == 0 {
		return guruerr.New(guruerr.KindInvalidInput, "specialist.assessment", "audio modality declared but no attachment present")
	}
	if !strings.HasPrefix(att.ContentType, "audio/") {
		return guruerr.Newf(guruerr.KindInvalidInput, "specialist.assessment",
			"content type %q is not audio", att.ContentType)
	}
	if att.Size() > pipeline.MaxAudioBytes {
		return guruerr.Newf(guruerr.KindInvalidInput, "specialist.assessment",
			"audio size %d exceeds %d byte limit", att.Size(), pipeline.MaxAudioBytes)
	}
	return nil
}

func joinGrades(grades []models.GradeLevel) string {
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = fmt.Sprintf("%d", int(g))
	}
	return strings.Join(parts, ", ")
}
