package specialist

import (
	"context"
	"fmt"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/pkg/models"
)

// VisualAidAgent describes blackboard-reproducible line drawings and
// diagrams for a concept.
type VisualAidAgent struct {
	gen    capability.Generator
	prompt promptSpec
}

var _ Agent = (*VisualAidAgent)(nil)

// NewVisualAidAgent creates the visual aid specialist.
func NewVisualAidAgent(gen capability.Generator) (*VisualAidAgent, error) {
	if gen == nil {
		return nil, fmt.Errorf("visual aid agent requires a generator")
	}
	spec, err := promptFor(models.AgentVisual)
	if err != nil {
		return nil, err
	}
	return &VisualAidAgent{gen: gen, prompt: spec}, nil
}

// ID implements Agent.
func (a *VisualAidAgent) ID() models.AgentID { return models.AgentVisual }

// Skills implements Agent.
func (a *VisualAidAgent) Skills() []string { return a.prompt.Skills }

// Handle returns step-by-step drawing instructions for the concept in the
// request text.
func (a *VisualAidAgent) Handle(ctx context.Context, env *models.RequestEnvelope) (*models.AgentResponse, error) {
	if err := requireText("specialist.visual", env); err != nil {
		return nil, err
	}
	text, err := generateText(ctx, a.gen, a.prompt.Instruction, env, nil)
	if err != nil {
		return nil, err
	}
	return &models.AgentResponse{AgentID: models.AgentVisual, Text: text}, nil
}
