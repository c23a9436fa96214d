package specialist

import (
	"context"
	"fmt"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/internal/culture"
	"github.com/guruai/guruai/pkg/models"
)

// ContentAgent produces hyper-local stories, games and examples rooted in
// the students' region.
type ContentAgent struct {
	gen      capability.Generator
	cultures *culture.Resolver
	prompt   promptSpec
}

var _ Agent = (*ContentAgent)(nil)

// NewContentAgent creates the local content generator. The resolver is
// optional; without it content is generated unbiased.
func NewContentAgent(gen capability.Generator, cultures *culture.Resolver) (*ContentAgent, error) {
	if gen == nil {
		return nil, fmt.Errorf("content agent requires a generator")
	}
	spec, err := promptFor(models.AgentContent)
	if err != nil {
		return nil, err
	}
	return &ContentAgent{gen: gen, cultures: cultures, prompt: spec}, nil
}

// ID implements Agent.
func (a *ContentAgent) ID() models.AgentID { return models.AgentContent }

// Skills implements Agent.
func (a *ContentAgent) Skills() []string { return a.prompt.Skills }

// Handle generates localized content for the request text.
func (a *ContentAgent) Handle(ctx context.Context, env *models.RequestEnvelope) (*models.AgentResponse, error) {
	if err := requireText("specialist.content", env); err != nil {
		return nil, err
	}

	var bias *models.CulturalProfile
	if a.cultures != nil && env.Context.Region != "" {
		if profile, ok := a.cultures.Resolve(env.Context.Region); ok {
			bias = profile
		}
	}

	text, err := generateText(ctx, a.gen, a.prompt.Instruction, env, bias)
	if err != nil {
		return nil, err
	}
	return &models.AgentResponse{AgentID: models.AgentContent, Text: text}, nil
}
