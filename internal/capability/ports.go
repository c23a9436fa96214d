// Package capability defines the typed call boundaries to the external AI
// services the core consumes: image-text extraction, complexity analysis,
// content generation, and translation. Concrete providers are injected;
// every port call carries a context, respects a bounded timeout, and fails
// with one of the closed guruerr kinds (invalid input, transient, fatal).
package capability

import (
	"context"

	"github.com/guruai/guruai/pkg/models"
)

// GenerationRequest carries everything the generation port needs to
// produce one grade level's worksheet body.
type GenerationRequest struct {
	// Text is the source content to differentiate.
	Text string
	// Profile is the analyzer's read on the content. May be nil for
	// free-form generation outside the pipeline.
	Profile *models.ContentProfile
	// Grade is the target grade level. Zero when not grade-specific.
	Grade models.GradeLevel
	// Language is the requested output language.
	Language string
	// Subject is the subject area hint.
	Subject string
	// Bias is the cultural profile used to localize examples. Nil means
	// no localization bias.
	Bias *models.CulturalProfile
	// Instruction overrides the default task framing, used by the
	// text-only specialists (explanations, diagrams, lesson plans).
	Instruction string
}

// Extractor recovers text from a textbook page image.
type Extractor interface {
	ExtractText(ctx context.Context, image models.Attachment) (*models.ExtractionResult, error)
}

// Analyzer estimates complexity and subject for extracted text.
type Analyzer interface {
	AnalyzeComplexity(ctx context.Context, text string) (*models.ContentProfile, error)
}

// Generator produces one worksheet body per call.
type Generator interface {
	GenerateContent(ctx context.Context, req GenerationRequest) (*models.WorksheetBody, error)
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Ports bundles all four capability ports for injection as a unit.
type Ports struct {
	Extractor  Extractor
	Analyzer   Analyzer
	Generator  Generator
	Translator Translator
}
