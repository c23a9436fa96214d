package specialist

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/pkg/models"
)

// KnowledgeAgent explains complex concepts simply, with an analogy, in
// the requested language.
type KnowledgeAgent struct {
	gen    capability.Generator
	tr     capability.Translator
	prompt promptSpec
}

var _ Agent = (*KnowledgeAgent)(nil)

// NewKnowledgeAgent creates the knowledge base specialist. The translator
// is optional; without it explanations stay in the generation language.
func NewKnowledgeAgent(gen capability.Generator, tr capability.Translator) (*KnowledgeAgent, error) {
	if gen == nil {
		return nil, fmt.Errorf("knowledge agent requires a generator")
	}
	spec, err := promptFor(models.AgentKnowledge)
	if err != nil {
		return nil, err
	}
	return &KnowledgeAgent{gen: gen, tr: tr, prompt: spec}, nil
}

// ID implements Agent.
func (a *KnowledgeAgent) ID() models.AgentID { return models.AgentKnowledge }

// Skills implements Agent.
func (a *KnowledgeAgent) Skills() []string { return a.prompt.Skills }

// Handle produces a grade-appropriate explanation for the question in the
// request text, then localizes it through the translation port when the
// requested language is not English.
func (a *KnowledgeAgent) Handle(ctx context.Context, env *models.RequestEnvelope) (*models.AgentResponse, error) {
	if err := requireText("specialist.knowledge", env); err != nil {
		return nil, err
	}

	// The explanation is generated in English first so the analogy stays
	// coherent, then translated whole.
	base := *env
	base.Context.Language = "english"

	text, err := generateText(ctx, a.gen, a.prompt.Instruction, &base, nil)
	if err != nil {
		return nil, err
	}

	if target := strings.ToLower(env.Context.Language); a.tr != nil && target != "" && target != "english" {
		translated, err := a.tr.Translate(ctx, text, env.Context.Language)
		if err != nil {
			log.Printf("[specialist] explanation translation to %q failed, keeping english: %v", env.Context.Language, err)
		} else {
			text = translated
		}
	}

	return &models.AgentResponse{AgentID: models.AgentKnowledge, Text: text}, nil
}
