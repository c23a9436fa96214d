package pipeline

import (
	"fmt"
	"sort"

	"github.com/guruai/guruai/pkg/models"
)

// Assemble merges the per-grade artifacts with the shared extraction and
// analysis metadata into the final envelope. It is deterministic: identical
// inputs yield the same artifact ordering (ascending grade) and the same
// degraded-grade annotations, regardless of input artifact order. It makes
// no external calls and always succeeds given any pipeline progress.
func Assemble(extraction *models.ExtractionResult, profile *models.ContentProfile, artifacts []models.WorksheetArtifact) *models.ResponseEnvelope {
	ordered := make([]models.WorksheetArtifact, len(artifacts))
	copy(ordered, artifacts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].GradeLevel < ordered[j].GradeLevel
	})

	var degraded []models.GradeLevel
	succeeded := 0
	for _, a := range ordered {
		if a.Status == models.ArtifactFailed {
			degraded = append(degraded, a.GradeLevel)
		} else {
			succeeded++
		}
	}

	return &models.ResponseEnvelope{
		Extraction:     extraction,
		Profile:        profile,
		Artifacts:      ordered,
		Degraded:       len(degraded) > 0 && succeeded > 0,
		DegradedGrades: degraded,
		Notes:          teacherNotes(profile),
		Guide:          implementationGuide(ordered),
	}
}

// teacherNotes derives lesson-running guidance from the content profile.
func teacherNotes(profile *models.ContentProfile) *models.TeacherNotes {
	notes := &models.TeacherNotes{
		PreparationTips: []string{
			"Review key concepts before class",
			"Prepare visual aids from local materials",
			"Plan for different learning paces",
		},
		Strategies: []string{
			"Start with group discussion",
			"Use peer learning for mixed abilities",
			"Provide individual support as needed",
		},
		CommonChallenges: []string{
			"Students may struggle with language",
			"Different grade levels need different support",
		},
	}
	for _, concept := range profile.KeyConcepts {
		notes.ExtensionIdeas = append(notes.ExtensionIdeas,
			fmt.Sprintf("Connect %s to local community examples", concept))
	}
	return notes
}

// implementationGuide builds the step-by-step classroom plan. Grades are
// already in ascending order when this runs.
func implementationGuide(artifacts []models.WorksheetArtifact) *models.ImplementationGuide {
	guide := &models.ImplementationGuide{
		BeforeClass: []string{
			"Print or write worksheets on the blackboard",
			"Gather required materials",
		},
		AfterClass: []string{
			"Review completed work",
			"Identify students needing extra help",
		},
	}

	guide.DuringClass = append(guide.DuringClass, "Introduce the topic with familiar examples")
	for _, a := range artifacts {
		if a.Status == models.ArtifactSuccess {
			guide.DuringClass = append(guide.DuringClass,
				fmt.Sprintf("Distribute the %s worksheet and set its groups working", a.GradeLevel))
		}
	}
	guide.DuringClass = append(guide.DuringClass, "Circulate and provide individual support")
	return guide
}
