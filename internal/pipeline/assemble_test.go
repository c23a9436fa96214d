package pipeline

import (
	"reflect"
	"testing"

	"github.com/guruai/guruai/pkg/models"
)

func sampleArtifacts() []models.WorksheetArtifact {
	return []models.WorksheetArtifact{
		{GradeLevel: 5, Status: models.ArtifactSuccess, Body: &models.WorksheetBody{Title: "Grade 5"}},
		{GradeLevel: 2, Status: models.ArtifactFailed, FailureReason: "model rejected the request"},
		{GradeLevel: 7, Status: models.ArtifactSuccess, Body: &models.WorksheetBody{Title: "Grade 7"}},
	}
}

func TestAssembleOrdersByGrade(t *testing.T) {
	extraction := &models.ExtractionResult{ID: "ext-1", RawText: "text"}
	profile := &models.ContentProfile{SubjectGuess: "science"}

	env := Assemble(extraction, profile, sampleArtifacts())

	want := []models.GradeLevel{2, 5, 7}
	got := make([]models.GradeLevel, len(env.Artifacts))
	for i, a := range env.Artifacts {
		got[i] = a.GradeLevel
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("artifact order = %v, want %v", got, want)
	}

	if !env.Degraded {
		t.Error("mixed outcomes must mark the envelope degraded")
	}
	if !reflect.DeepEqual(env.DegradedGrades, []models.GradeLevel{2}) {
		t.Errorf("degraded grades = %v, want [2]", env.DegradedGrades)
	}
	if env.Extraction != extraction || env.Profile != profile {
		t.Error("envelope must carry the shared extraction and profile")
	}
}

func TestAssembleDeterministic(t *testing.T) {
	extraction := &models.ExtractionResult{ID: "ext-1"}
	profile := &models.ContentProfile{KeyConcepts: []string{"water cycle", "evaporation"}}

	first := Assemble(extraction, profile, sampleArtifacts())

	// Same artifacts in a different input order.
	shuffled := sampleArtifacts()
	shuffled[0], shuffled[2] = shuffled[2], shuffled[0]
	second := Assemble(extraction, profile, shuffled)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs in different order must assemble identically")
	}
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	artifacts := sampleArtifacts()
	Assemble(&models.ExtractionResult{}, &models.ContentProfile{}, artifacts)

	if artifacts[0].GradeLevel != 5 {
		t.Error("input artifact slice was reordered in place")
	}
}

func TestAssembleAllSuccessNotDegraded(t *testing.T) {
	artifacts := []models.WorksheetArtifact{
		{GradeLevel: 3, Status: models.ArtifactSuccess, Body: &models.WorksheetBody{}},
		{GradeLevel: 4, Status: models.ArtifactSuccess, Body: &models.WorksheetBody{}},
	}
	env := Assemble(&models.ExtractionResult{}, &models.ContentProfile{}, artifacts)

	if env.Degraded {
		t.Error("all-success envelope must not be degraded")
	}
	if len(env.DegradedGrades) != 0 {
		t.Errorf("degraded grades = %v, want none", env.DegradedGrades)
	}
}

func TestAssembleGuideCoversSuccessfulGrades(t *testing.T) {
	env := Assemble(&models.ExtractionResult{}, &models.ContentProfile{}, sampleArtifacts())

	// Intro step, one step per successful grade, closing step.
	if len(env.Guide.DuringClass) != 4 {
		t.Fatalf("during-class steps = %d, want 4: %v", len(env.Guide.DuringClass), env.Guide.DuringClass)
	}
}

func TestTeacherNotesExtendKeyConcepts(t *testing.T) {
	profile := &models.ContentProfile{KeyConcepts: []string{"photosynthesis"}}
	env := Assemble(&models.ExtractionResult{}, profile, nil)

	if len(env.Notes.ExtensionIdeas) != 1 {
		t.Fatalf("extension ideas = %v, want one per key concept", env.Notes.ExtensionIdeas)
	}
}
