// Package pipeline implements the worksheet processing state machine:
// Ingest -> Extract -> Analyze -> Differentiate -> Assemble. The pipeline
// is driven top to bottom with no backward transitions; a failure at
// Ingest, Extract or Analyze aborts the whole run, while Differentiate
// failures are isolated per grade level.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/internal/culture"
	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/pkg/models"
)

// Attachment bounds mirror the storage boundary: violating inputs are
// rejected at Ingest and never reach a capability port.
const (
	MaxImageBytes = 5 << 20
	MaxAudioBytes = 10 << 20
)

// Config contains the pipeline's dependencies and tuning knobs.
type Config struct {
	// Ports are the capability ports the stages call.
	Ports capability.Ports
	// Cultures resolves region keys to localization bias. Optional; a nil
	// resolver means generation always runs unbiased.
	Cultures *culture.Resolver
	// MaxConcurrent bounds the Differentiate fan-out. Zero means
	// DefaultMaxConcurrent.
	MaxConcurrent int
	// RetryAttempts is the per-stage transient retry budget. Zero means
	// capability.DefaultAttempts.
	RetryAttempts int
}

// DefaultMaxConcurrent bounds concurrent per-grade generation calls.
const DefaultMaxConcurrent = 3

// Pipeline runs the worksheet state machine. It holds no per-run state;
// each Run operates on its own extraction, profile and artifact set.
type Pipeline struct {
	ports         capability.Ports
	cultures      *culture.Resolver
	maxConcurrent int
	retryAttempts int
}

// New creates a Pipeline from the given configuration.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Ports.Extractor == nil || cfg.Ports.Analyzer == nil || cfg.Ports.Generator == nil {
		return nil, fmt.Errorf("extractor, analyzer and generator ports are required")
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	retryAttempts := cfg.RetryAttempts
	if retryAttempts <= 0 {
		retryAttempts = capability.DefaultAttempts
	}
	return &Pipeline{
		ports:         cfg.Ports,
		cultures:      cfg.Cultures,
		maxConcurrent: maxConcurrent,
		retryAttempts: retryAttempts,
	}, nil
}

// Request is one worksheet processing run.
type Request struct {
	// Attachment is the photographed textbook page.
	Attachment models.Attachment
	// Grades are the target grade levels to differentiate across.
	Grades []models.GradeLevel
	// Subject is the subject hint ("auto" or empty to detect).
	Subject string
	// Language is the requested output language.
	Language string
	// Region selects the cultural profile biasing generation.
	Region string
}

// Run executes the full state machine and returns the assembled envelope.
func (p *Pipeline) Run(ctx context.Context, req Request) (*models.ResponseEnvelope, error) {
	if err := p.ingest(req); err != nil {
		return nil, err
	}

	extraction, err := p.extract(ctx, req.Attachment)
	if err != nil {
		return nil, err
	}
	log.Printf("[pipeline] extracted %d chars, language %q", len(extraction.RawText), extraction.DetectedLanguage)

	profile, err := p.analyze(ctx, extraction.RawText, req.Subject)
	if err != nil {
		return nil, err
	}
	log.Printf("[pipeline] analyzed: subject %q, complexity %s", profile.SubjectGuess, profile.EstimatedComplexity)

	artifacts, err := p.differentiate(ctx, extraction, profile, req)
	if err != nil {
		return nil, err
	}

	envelope := Assemble(extraction, profile, artifacts)
	if envelope.Degraded {
		log.Printf("[pipeline] degraded success: grades %v failed", envelope.DegradedGrades)
	}
	return envelope, nil
}

// ingest validates the image attachment against the storage boundary
// constraints. Violations are terminal and never retried.
func (p *Pipeline) ingest(req Request) error {
	if req.Attachment.Size() == 0 {
		return guruerr.New(guruerr.KindInvalidInput, "pipeline.ingest", "empty image attachment")
	}
	if !strings.HasPrefix(req.Attachment.ContentType, "image/") {
		return guruerr.Newf(guruerr.KindInvalidInput, "pipeline.ingest",
			"content type %q is not an image", req.Attachment.ContentType)
	}
	if req.Attachment.Size() > MaxImageBytes {
		return guruerr.Newf(guruerr.KindInvalidInput, "pipeline.ingest",
			"image size %d exceeds %d byte limit", req.Attachment.Size(), MaxImageBytes)
	}
	if err := models.ValidateGrades(req.Grades); err != nil {
		return guruerr.Wrap(guruerr.KindInvalidInput, "pipeline.ingest", err)
	}
	return nil
}

// extract calls the extraction port with the transient retry budget.
// Exhaustion is terminal for the whole run.
func (p *Pipeline) extract(ctx context.Context, image models.Attachment) (*models.ExtractionResult, error) {
	var result *models.ExtractionResult
	err := capability.Retry(ctx, "pipeline.extract", p.retryAttempts, func(ctx context.Context) error {
		var callErr error
		result, callErr = p.ports.Extractor.ExtractText(ctx, image)
		return callErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, guruerr.Wrap(guruerr.KindExtractionFailed, "pipeline.extract", err)
	}
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	return result, nil
}

// analyze calls the analysis port with the transient retry budget and
// falls back to keyword subject detection when the analyzer gives none.
func (p *Pipeline) analyze(ctx context.Context, text, subjectHint string) (*models.ContentProfile, error) {
	var profile *models.ContentProfile
	err := capability.Retry(ctx, "pipeline.analyze", p.retryAttempts, func(ctx context.Context) error {
		var callErr error
		profile, callErr = p.ports.Analyzer.AnalyzeComplexity(ctx, text)
		return callErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, guruerr.Wrap(guruerr.KindAnalysisFailed, "pipeline.analyze", err)
	}

	if subjectHint != "" && subjectHint != "auto" {
		profile.SubjectGuess = subjectHint
	} else if profile.SubjectGuess == "" || profile.SubjectGuess == "auto" {
		profile.SubjectGuess = detectSubject(text)
	}
	return profile, nil
}

// bias resolves the localization bias for a region. An unknown region or
// missing resolver yields nil, which generation treats as no bias.
func (p *Pipeline) bias(region string) *models.CulturalProfile {
	if p.cultures == nil || region == "" {
		return nil
	}
	profile, ok := p.cultures.Resolve(region)
	if !ok {
		log.Printf("[pipeline] region %q unknown, generating without localization bias", region)
		return nil
	}
	return profile
}
