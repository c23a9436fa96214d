package coordinator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/internal/session"
	"github.com/guruai/guruai/internal/specialist"
	"github.com/guruai/guruai/pkg/models"
)

// appendRetries bounds how often a message append refetches after a
// version conflict before giving up.
const appendRetries = 3

// Coordinator accepts request envelopes, selects exactly one specialist,
// and brackets each dispatch with the session protocol: user message
// appended before the specialist runs, agent reply appended after. The
// coordinator itself is stateless; all state lives in the store.
type Coordinator struct {
	registry *Registry
	store    session.Store
}

// New creates a Coordinator over the given capability table and store.
func New(registry *Registry, store session.Store) (*Coordinator, error) {
	if registry == nil || store == nil {
		return nil, fmt.Errorf("coordinator requires a registry and a session store")
	}
	return &Coordinator{registry: registry, store: store}, nil
}

// Route handles one envelope end to end: validate, load the session,
// select a specialist, persist the user turn, dispatch, persist the
// reply. A dispatch failure still leaves the user message stored.
func (c *Coordinator) Route(ctx context.Context, env *models.RequestEnvelope) (*models.AgentResponse, error) {
	if err := env.Validate(); err != nil {
		return nil, guruerr.Wrap(guruerr.KindInvalidInput, "coordinator.route", err)
	}

	sess, err := c.store.Get(ctx, env.SessionID)
	if err != nil {
		return nil, err
	}

	agent, err := c.selectAgent(env)
	if err != nil {
		return nil, err
	}
	log.Printf("[coordinator] session %s -> %s (intent %q, modalities %v)",
		env.SessionID, agent.ID(), env.Intent, env.Modalities)

	effective := effectiveContext(sess.Context, env.Context)
	if effective != nil {
		if err := c.store.ReplaceContext(ctx, env.SessionID, *effective); err != nil {
			return nil, err
		}
		env.Context = *effective
	} else {
		env.Context = sess.Context
	}

	if err := c.append(ctx, env.SessionID, userMessage(env)); err != nil {
		return nil, err
	}

	resp, err := agent.Handle(ctx, env)
	if err != nil {
		// The user turn stays in the history; only the reply is missing.
		return nil, normalizeAgentErr(agent.ID(), err)
	}

	if err := c.append(ctx, env.SessionID, agentMessage(resp)); err != nil {
		return nil, err
	}
	return resp, nil
}

// selectAgent applies the routing precedence: declared intent against the
// capability table first, then modality inference, then unroutable.
func (c *Coordinator) selectAgent(env *models.RequestEnvelope) (specialist.Agent, error) {
	if env.Intent != "" {
		if agent, ok := c.registry.BySkill(env.Intent); ok {
			return agent, nil
		}
		// An unmatched declared intent falls through to modality
		// inference rather than failing outright.
		log.Printf("[coordinator] intent %q matches no skill, inferring from modalities", env.Intent)
	}

	switch {
	case env.HasModality(models.ModalityImage):
		if agent, ok := c.registry.ByID(models.AgentWorksheet); ok {
			return agent, nil
		}
	case env.HasModality(models.ModalityAudio):
		if agent, ok := c.registry.ByID(models.AgentAssessment); ok {
			return agent, nil
		}
	case env.HasModality(models.ModalityText):
		if agent, ok := c.registry.ByID(models.AgentContent); ok {
			return agent, nil
		}
	}

	return nil, guruerr.Newf(guruerr.KindUnroutable, "coordinator.route",
		"no agent serves intent %q with modalities %v", env.Intent, env.Modalities)
}

// append persists one message, refetching the version and retrying on
// optimistic-concurrency conflicts.
func (c *Coordinator) append(ctx context.Context, sessionID string, msg models.Message) error {
	var lastErr error
	for attempt := 0; attempt < appendRetries; attempt++ {
		sess, err := c.store.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		_, err = c.store.AppendMessage(ctx, sessionID, msg, sess.Version)
		if err == nil {
			return nil
		}
		if guruerr.KindOf(err) != guruerr.KindVersionConflict {
			return err
		}
		lastErr = err
		log.Printf("[coordinator] append conflict on session %s, refetching", sessionID)
	}
	return lastErr
}

// effectiveContext resolves the context used for this request: envelope
// fields override the stored context field by field. It returns nil when
// the envelope changes nothing, so no store write is needed.
func effectiveContext(stored, requested models.SessionContext) *models.SessionContext {
	merged := stored
	changed := false
	if requested.Language != "" && requested.Language != stored.Language {
		merged.Language = requested.Language
		changed = true
	}
	if len(requested.GradeLevels) > 0 {
		merged.GradeLevels = requested.GradeLevels
		changed = true
	}
	if requested.Subject != "" && requested.Subject != stored.Subject {
		merged.Subject = requested.Subject
		changed = true
	}
	if requested.Region != "" && requested.Region != stored.Region {
		merged.Region = requested.Region
		changed = true
	}
	if !changed {
		return nil
	}
	return &merged
}

// normalizeAgentErr keeps taxonomy errors as-is and classifies everything
// else as the agent being unavailable for this request.
func normalizeAgentErr(id models.AgentID, err error) error {
	if guruerr.KindOf(err) != guruerr.KindUnknown {
		return err
	}
	return guruerr.Wrap(guruerr.KindAgentUnavailable, fmt.Sprintf("coordinator.dispatch.%s", id), err)
}

func userMessage(env *models.RequestEnvelope) models.Message {
	msg := models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   env.Text,
		Timestamp: time.Now().UTC(),
	}
	if env.Attachment != nil {
		msg.AttachmentRef = fmt.Sprintf("attachment/%s", uuid.New().String())
	}
	return msg
}

func agentMessage(resp *models.AgentResponse) models.Message {
	return models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleAgent,
		Content:   resp.Text,
		AgentID:   resp.AgentID,
		Timestamp: time.Now().UTC(),
	}
}
