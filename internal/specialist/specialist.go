// Package specialist implements the closed set of agents the coordinator
// dispatches to. Each agent is a thin prompt-shaping wrapper over the
// capability ports; the worksheet agent additionally drives the full
// processing pipeline.
package specialist

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/pkg/models"
)

// Agent is one specialist behind the router.
type Agent interface {
	// ID returns the stable agent identifier.
	ID() models.AgentID
	// Skills returns the skill identifiers this agent serves. Skill ids
	// are matched against an envelope's declared intent.
	Skills() []string
	// Handle processes one routed envelope.
	Handle(ctx context.Context, env *models.RequestEnvelope) (*models.AgentResponse, error)
}

// promptSpec is one agent's entry in prompts.yaml.
type promptSpec struct {
	// Skills are the intent identifiers the agent answers to.
	Skills []string `yaml:"skills"`
	// Instruction is the system framing prepended to every request.
	Instruction string `yaml:"instruction"`
}

//go:embed prompts.yaml
var rawPrompts []byte

var (
	promptsOnce sync.Once
	promptTable map[string]promptSpec
	promptsErr  error
)

// prompts parses the embedded prompt table once.
func prompts() (map[string]promptSpec, error) {
	promptsOnce.Do(func() {
		promptTable = make(map[string]promptSpec)
		promptsErr = yaml.Unmarshal(rawPrompts, &promptTable)
	})
	return promptTable, promptsErr
}

// promptFor looks up one agent's prompt entry.
func promptFor(id models.AgentID) (promptSpec, error) {
	table, err := prompts()
	if err != nil {
		return promptSpec{}, fmt.Errorf("parse prompt table: %w", err)
	}
	spec, ok := table[string(id)]
	if !ok {
		return promptSpec{}, fmt.Errorf("no prompt entry for agent %q", id)
	}
	return spec, nil
}

// primaryGrade picks the grade the text specialists target: the first
// requested grade, or a mid-band default when the context gives none.
func primaryGrade(env *models.RequestEnvelope) models.GradeLevel {
	if len(env.Context.GradeLevels) > 0 {
		return env.Context.GradeLevels[0]
	}
	return 4
}

// generateText runs one instruction-framed generation call and returns
// the prose result.
func generateText(ctx context.Context, gen capability.Generator, instruction string, env *models.RequestEnvelope, bias *models.CulturalProfile) (string, error) {
	req := capability.GenerationRequest{
		Text:        env.Text,
		Grade:       primaryGrade(env),
		Language:    env.Context.Language,
		Subject:     env.Context.Subject,
		Bias:        bias,
		Instruction: instruction,
	}

	var body *models.WorksheetBody
	err := capability.Retry(ctx, "specialist.generate", capability.DefaultAttempts, func(ctx context.Context) error {
		var callErr error
		body, callErr = gen.GenerateContent(ctx, req)
		return callErr
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(body.Summary)
	if text == "" {
		text = strings.TrimSpace(body.Title)
	}
	if text == "" {
		return "", guruerr.New(guruerr.KindFatal, "specialist.generate", "generation returned no text")
	}
	return text, nil
}

// requireText rejects envelopes without usable text input.
func requireText(op string, env *models.RequestEnvelope) error {
	if strings.TrimSpace(env.Text) == "" {
		return guruerr.New(guruerr.KindInvalidInput, op, "request has no text to work from")
	}
	return nil
}
