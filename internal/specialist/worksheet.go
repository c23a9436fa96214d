package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/internal/pipeline"
	"github.com/guruai/guruai/pkg/models"
)

// WorksheetAgent turns a photographed textbook page into differentiated
// worksheets by driving the processing pipeline.
type WorksheetAgent struct {
	pipe   *pipeline.Pipeline
	skills []string
}

var _ Agent = (*WorksheetAgent)(nil)

// NewWorksheetAgent wraps the given pipeline as a specialist.
func NewWorksheetAgent(pipe *pipeline.Pipeline) (*WorksheetAgent, error) {
	if pipe == nil {
		return nil, fmt.Errorf("worksheet agent requires a pipeline")
	}
	spec, err := promptFor(models.AgentWorksheet)
	if err != nil {
		return nil, err
	}
	return &WorksheetAgent{pipe: pipe, skills: spec.Skills}, nil
}

// ID implements Agent.
func (a *WorksheetAgent) ID() models.AgentID { return models.AgentWorksheet }

// Skills implements Agent.
func (a *WorksheetAgent) Skills() []string { return a.skills }

// Handle runs the full worksheet pipeline for the envelope's image.
func (a *WorksheetAgent) Handle(ctx context.Context, env *models.RequestEnvelope) (*models.AgentResponse, error) {
	if env.Attachment == nil {
		return nil, guruerr.New(guruerr.KindInvalidInput, "specialist.worksheet", "worksheet processing requires an image attachment")
	}

	grades := env.Context.GradeLevels
	if len(grades) == 0 {
		return nil, guruerr.New(guruerr.KindInvalidInput, "specialist.worksheet", "no target grade levels in request context")
	}

	envelope, err := a.pipe.Run(ctx, pipeline.Request{
		Attachment: *env.Attachment,
		Grades:     grades,
		Subject:    env.Context.Subject,
		Language:   env.Context.Language,
		Region:     env.Context.Region,
	})
	if err != nil {
		return nil, err
	}

	return &models.AgentResponse{
		AgentID:    models.AgentWorksheet,
		Text:       worksheetSummary(envelope),
		Worksheets: envelope,
	}, nil
}

// worksheetSummary renders the short reply text accompanying the
// structured envelope.
func worksheetSummary(env *models.ResponseEnvelope) string {
	var b strings.Builder
	succeeded := 0
	for _, a := range env.Artifacts {
		if a.Status == models.ArtifactSuccess {
			succeeded++
		}
	}
	fmt.Fprintf(&b, "Created %d of %d worksheets", succeeded, len(env.Artifacts))
	if env.Profile != nil && env.Profile.SubjectGuess != "" {
		fmt.Fprintf(&b, " for %s", env.Profile.SubjectGuess)
	}
	b.WriteString(".")
	if env.Degraded {
		fmt.Fprintf(&b, " Generation failed for %v; the remaining worksheets are complete.", env.DegradedGrades)
	}
	return b.String()
}
