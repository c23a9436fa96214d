package models

// Complexity is an ordinal scale for content difficulty.
type Complexity int

const (
	// ComplexityUnknown means the analyzer produced no estimate.
	ComplexityUnknown Complexity = iota
	// ComplexityVerySimple suits early primary readers.
	ComplexityVerySimple
	// ComplexitySimple suits primary readers.
	ComplexitySimple
	// ComplexityModerate suits middle primary readers.
	ComplexityModerate
	// ComplexityComplex suits upper primary readers.
	ComplexityComplex
	// ComplexityVeryComplex exceeds the band this system targets.
	ComplexityVeryComplex
)

// String returns the canonical name for the complexity level.
func (c Complexity) String() string {
	switch c {
	case ComplexityVerySimple:
		return "very_simple"
	case ComplexitySimple:
		return "simple"
	case ComplexityModerate:
		return "moderate"
	case ComplexityComplex:
		return "complex"
	case ComplexityVeryComplex:
		return "very_complex"
	default:
		return "unknown"
	}
}

// ParseComplexity maps a canonical name back to its level.
// Unrecognized names map to ComplexityUnknown.
func ParseComplexity(s string) Complexity {
	switch s {
	case "very_simple":
		return ComplexityVerySimple
	case "simple":
		return ComplexitySimple
	case "moderate":
		return ComplexityModerate
	case "complex":
		return ComplexityComplex
	case "very_complex":
		return ComplexityVeryComplex
	default:
		return ComplexityUnknown
	}
}

// ExtractionResult is what the Extract stage produced from a textbook
// page image. Immutable once produced.
type ExtractionResult struct {
	// ID is the unique identifier artifacts use to reference this extraction.
	ID string `json:"id"`
	// RawText is the cleaned text recovered from the page.
	RawText string `json:"raw_text"`
	// DetectedLanguage is the language the extractor identified.
	DetectedLanguage string `json:"detected_language"`
	// LayoutHints are optional structural markers (headings, diagrams).
	LayoutHints []string `json:"layout_hints,omitempty"`
}

// ContentProfile is the Analyze stage's read on the extracted content.
// It biases differentiation and is never mutated afterward.
type ContentProfile struct {
	// EstimatedComplexity is the analyzer's difficulty estimate.
	EstimatedComplexity Complexity `json:"estimated_complexity"`
	// SubjectGuess is the detected subject area.
	SubjectGuess string `json:"subject_guess"`
	// PrerequisiteConcepts are concepts a learner needs beforehand.
	PrerequisiteConcepts []string `json:"prerequisite_concepts,omitempty"`
	// KeyConcepts are the main concepts the content teaches.
	KeyConcepts []string `json:"key_concepts,omitempty"`
}

// SectionType categorizes a worksheet section by the kind of work it asks for.
type SectionType string

const (
	SectionObservation    SectionType = "observation"
	SectionMatching       SectionType = "matching"
	SectionFillInBlanks   SectionType = "fill_in_blanks"
	SectionComprehension  SectionType = "comprehension"
	SectionApplication    SectionType = "application"
	SectionAnalysis       SectionType = "analysis"
	SectionProblemSolving SectionType = "problem_solving"
	SectionCreative       SectionType = "creative"
)

// WorksheetSection is one block of exercises on a worksheet.
type WorksheetSection struct {
	// Title is the section heading.
	Title string `json:"title"`
	// Type categorizes the activity.
	Type SectionType `json:"type"`
	// Instructions tell the student what to do.
	Instructions string `json:"instructions"`
	// Questions are the individual prompts in this section.
	Questions []string `json:"questions,omitempty"`
	// TimeEstimateMinutes is the expected completion time.
	TimeEstimateMinutes int `json:"time_estimate_minutes,omitempty"`
}

// AssessmentRubric describes how completed work should be scored.
type AssessmentRubric struct {
	// Type is the rubric style ("observational" for early grades,
	// "rubric_based" for older ones).
	Type string `json:"type"`
	// Criteria are the dimensions being assessed.
	Criteria []string `json:"criteria"`
	// Scale describes the scoring scale.
	Scale string `json:"scale"`
}

// WorksheetBody is the structured exercise content of one worksheet.
type WorksheetBody struct {
	// Title is the worksheet heading.
	Title string `json:"title"`
	// Summary is a short free-text rendering of the content, used by
	// text-only specialists and previews.
	Summary string `json:"summary,omitempty"`
	// LearningObjectives are the objectives this worksheet targets.
	LearningObjectives []string `json:"learning_objectives,omitempty"`
	// Sections are the exercise blocks.
	Sections []WorksheetSection `json:"sections"`
	// Materials lists what students need to complete the work.
	Materials []string `json:"materials,omitempty"`
	// EstimatedMinutes is the total expected completion time.
	EstimatedMinutes int `json:"estimated_minutes,omitempty"`
	// Assessment describes how the work should be scored.
	Assessment *AssessmentRubric `json:"assessment,omitempty"`
}

// ArtifactStatus marks whether a per-grade generation call succeeded.
type ArtifactStatus string

const (
	// ArtifactSuccess indicates the grade's worksheet was generated.
	ArtifactSuccess ArtifactStatus = "success"
	// ArtifactFailed indicates the grade's generation call failed.
	ArtifactFailed ArtifactStatus = "failed"
)

// WorksheetArtifact is one grade level's output from the Differentiate
// stage. Never mutated after creation; regeneration produces a new artifact.
type WorksheetArtifact struct {
	// GradeLevel is the grade this worksheet targets.
	GradeLevel GradeLevel `json:"grade_level"`
	// Status marks whether generation succeeded for this grade.
	Status ArtifactStatus `json:"status"`
	// Body is the structured exercise content. Nil when Status is failed.
	Body *WorksheetBody `json:"body,omitempty"`
	// Language is the output language of the body.
	Language string `json:"language,omitempty"`
	// SourceExtractionID references the extraction this was derived from.
	SourceExtractionID string `json:"source_extraction_id"`
	// FailureReason explains a failed status, empty on success.
	FailureReason string `json:"failure_reason,omitempty"`
}

// TeacherNotes collects guidance for running the differentiated lesson.
type TeacherNotes struct {
	PreparationTips  []string `json:"preparation_tips,omitempty"`
	Strategies       []string `json:"strategies,omitempty"`
	CommonChallenges []string `json:"common_challenges,omitempty"`
	ExtensionIdeas   []string `json:"extension_ideas,omitempty"`
}

// ImplementationGuide is a step-by-step plan for using the worksheets
// in a multi-grade classroom.
type ImplementationGuide struct {
	BeforeClass []string `json:"before_class,omitempty"`
	DuringClass []string `json:"during_class,omitempty"`
	AfterClass  []string `json:"after_class,omitempty"`
}

// ResponseEnvelope is the final multi-part worksheet output: one artifact
// per requested grade, ordered by ascending grade level, plus the shared
// extraction and analysis metadata.
type ResponseEnvelope struct {
	// Extraction is the shared extraction result.
	Extraction *ExtractionResult `json:"extraction"`
	// Profile is the shared content profile.
	Profile *ContentProfile `json:"profile"`
	// Artifacts holds one entry per requested grade, ascending by grade.
	Artifacts []WorksheetArtifact `json:"artifacts"`
	// Degraded is true when at least one grade failed while others succeeded.
	Degraded bool `json:"degraded"`
	// DegradedGrades lists the grades whose generation failed.
	DegradedGrades []GradeLevel `json:"degraded_grades,omitempty"`
	// Notes is guidance for running the lesson.
	Notes *TeacherNotes `json:"notes,omitempty"`
	// Guide is the classroom implementation plan.
	Guide *ImplementationGuide `json:"guide,omitempty"`
}
