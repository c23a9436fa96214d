package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/internal/grades"
	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/pkg/models"
)

// differentiate fans the generation port out across the requested grade
// levels, bounded by maxConcurrent. Each grade's outcome is captured
// independently: one failed grade marks its artifact failed without
// aborting the others. Only when every grade fails does the stage fail.
func (p *Pipeline) differentiate(ctx context.Context, extraction *models.ExtractionResult, profile *models.ContentProfile, req Request) ([]models.WorksheetArtifact, error) {
	bias := p.bias(req.Region)
	language := req.Language
	if language == "" {
		language = extraction.DetectedLanguage
	}

	artifacts := make([]models.WorksheetArtifact, len(req.Grades))
	sem := make(chan struct{}, p.maxConcurrent)
	var wg sync.WaitGroup

	for i, grade := range req.Grades {
		wg.Add(1)
		go func(i int, grade models.GradeLevel) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				artifacts[i] = failedArtifact(grade, extraction.ID, ctx.Err())
				return
			}

			artifacts[i] = p.generateForGrade(ctx, extraction, profile, grade, language, bias)
		}(i, grade)
	}
	wg.Wait()

	// Cancellation discards completed artifacts rather than surfacing a
	// partial result set.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	succeeded := 0
	for _, a := range artifacts {
		if a.Status == models.ArtifactSuccess {
			succeeded++
		}
	}
	if succeeded == 0 {
		return nil, guruerr.Newf(guruerr.KindAllGradesFailed, "pipeline.differentiate",
			"generation failed for all %d requested grades", len(req.Grades))
	}

	return artifacts, nil
}

// generateForGrade produces one grade's artifact, retrying transient
// generation failures within the stage budget.
func (p *Pipeline) generateForGrade(ctx context.Context, extraction *models.ExtractionResult, profile *models.ContentProfile, grade models.GradeLevel, language string, bias *models.CulturalProfile) models.WorksheetArtifact {
	genReq := capability.GenerationRequest{
		Text:        extraction.RawText,
		Profile:     profile,
		Grade:       grade,
		Language:    language,
		Subject:     profile.SubjectGuess,
		Bias:        bias,
		Instruction: differentiationInstruction(grade, profile.SubjectGuess),
	}

	var body *models.WorksheetBody
	err := capability.Retry(ctx, fmt.Sprintf("pipeline.generate.%s", grade), p.retryAttempts, func(ctx context.Context) error {
		var callErr error
		body, callErr = p.ports.Generator.GenerateContent(ctx, genReq)
		return callErr
	})
	if err != nil {
		log.Printf("[pipeline] %s generation failed: %v", grade, err)
		return failedArtifact(grade, extraction.ID, err)
	}

	if body.Assessment == nil {
		body.Assessment = grades.Rubric(grade)
	}
	if body.EstimatedMinutes == 0 {
		for _, s := range body.Sections {
			body.EstimatedMinutes += s.TimeEstimateMinutes
		}
	}
	p.translateHeadings(ctx, body, extraction.DetectedLanguage, language)

	return models.WorksheetArtifact{
		GradeLevel:         grade,
		Status:             models.ArtifactSuccess,
		Body:               body,
		Language:           language,
		SourceExtractionID: extraction.ID,
	}
}

// translateHeadings localizes the worksheet title and summary through the
// translation port when the output language differs from the source page.
// Translation failure is not a grade failure; the untranslated text stays.
func (p *Pipeline) translateHeadings(ctx context.Context, body *models.WorksheetBody, sourceLanguage, targetLanguage string) {
	if p.ports.Translator == nil || targetLanguage == "" || strings.EqualFold(sourceLanguage, targetLanguage) {
		return
	}
	if body.Title != "" {
		if translated, err := p.ports.Translator.Translate(ctx, body.Title, targetLanguage); err == nil {
			body.Title = translated
		} else {
			log.Printf("[pipeline] title translation to %q failed, keeping original: %v", targetLanguage, err)
		}
	}
	if body.Summary != "" {
		if translated, err := p.ports.Translator.Translate(ctx, body.Summary, targetLanguage); err == nil {
			body.Summary = translated
		}
	}
}

// differentiationInstruction frames the generation task for one grade
// using its band characteristics.
func differentiationInstruction(grade models.GradeLevel, subject string) string {
	c := grades.For(grade)

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s worksheet differentiated for %s (ages %d-%d).", subject, grade, c.AgeMin, c.AgeMax)
	fmt.Fprintf(&b, " Plan for a %d minute attention span.", c.AttentionSpanMinutes)

	sections := make([]string, len(c.PreferredSections))
	for i, s := range c.PreferredSections {
		sections[i] = string(s)
	}
	fmt.Fprintf(&b, " Favor %s activities.", strings.Join(sections, ", "))

	if !c.AbstractThinking {
		b.WriteString(" Use concrete, familiar examples only; avoid abstract reasoning.")
	}
	return b.String()
}

// failedArtifact records a per-grade failure without a body.
func failedArtifact(grade models.GradeLevel, extractionID string, err error) models.WorksheetArtifact {
	return models.WorksheetArtifact{
		GradeLevel:         grade,
		Status:             models.ArtifactFailed,
		SourceExtractionID: extractionID,
		FailureReason:      err.Error(),
	}
}
