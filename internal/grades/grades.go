// Package grades holds the static characteristics of each grade level in
// the 1-8 band, used to shape differentiation prompts and assessment
// rubrics for multi-grade classrooms.
package grades

import "github.com/guruai/guruai/pkg/models"

// Characteristics describes what students at one grade level can do.
type Characteristics struct {
	// Grade is the grade level these characteristics describe.
	Grade models.GradeLevel
	// AgeMin and AgeMax bound the typical age range.
	AgeMin, AgeMax int
	// AttentionSpanMinutes is the sustained focus time to plan around.
	AttentionSpanMinutes int
	// ReadingLevel is the expected reading complexity.
	ReadingLevel models.Complexity
	// AbstractThinking is true once students handle abstract reasoning.
	AbstractThinking bool
	// PreferredSections are the activity types that work best.
	PreferredSections []models.SectionType
}

// Band groups grades by the worksheet structure they need.
type Band int

const (
	// BandEarlyPrimary covers grades 1-2: oral and matching work.
	BandEarlyPrimary Band = iota
	// BandPrimary covers grades 3-5: short written responses.
	BandPrimary
	// BandUpperPrimary covers grades 6-8: analysis and application.
	BandUpperPrimary
)

// table indexes characteristics by grade.
var table = map[models.GradeLevel]Characteristics{
	1: {Grade: 1, AgeMin: 6, AgeMax: 7, AttentionSpanMinutes: 10, ReadingLevel: models.ComplexityVerySimple,
		PreferredSections: []models.SectionType{models.SectionObservation, models.SectionMatching}},
	2: {Grade: 2, AgeMin: 7, AgeMax: 8, AttentionSpanMinutes: 15, ReadingLevel: models.ComplexitySimple,
		PreferredSections: []models.SectionType{models.SectionObservation, models.SectionMatching, models.SectionFillInBlanks}},
	3: {Grade: 3, AgeMin: 8, AgeMax: 9, AttentionSpanMinutes: 20, ReadingLevel: models.ComplexitySimple,
		PreferredSections: []models.SectionType{models.SectionComprehension, models.SectionMatching, models.SectionFillInBlanks, models.SectionCreative}},
	4: {Grade: 4, AgeMin: 9, AgeMax: 10, AttentionSpanMinutes: 25, ReadingLevel: models.ComplexityModerate,
		PreferredSections: []models.SectionType{models.SectionComprehension, models.SectionApplication, models.SectionProblemSolving}},
	5: {Grade: 5, AgeMin: 10, AgeMax: 11, AttentionSpanMinutes: 30, ReadingLevel: models.ComplexityModerate,
		PreferredSections: []models.SectionType{models.SectionComprehension, models.SectionApplication, models.SectionProblemSolving}},
	6: {Grade: 6, AgeMin: 11, AgeMax: 12, AttentionSpanMinutes: 35, ReadingLevel: models.ComplexityComplex, AbstractThinking: true,
		PreferredSections: []models.SectionType{models.SectionAnalysis, models.SectionApplication, models.SectionProblemSolving}},
	7: {Grade: 7, AgeMin: 12, AgeMax: 13, AttentionSpanMinutes: 40, ReadingLevel: models.ComplexityComplex, AbstractThinking: true,
		PreferredSections: []models.SectionType{models.SectionAnalysis, models.SectionApplication, models.SectionCreative}},
	8: {Grade: 8, AgeMin: 13, AgeMax: 14, AttentionSpanMinutes: 45, ReadingLevel: models.ComplexityComplex, AbstractThinking: true,
		PreferredSections: []models.SectionType{models.SectionAnalysis, models.SectionApplication, models.SectionCreative}},
}

// For returns the characteristics for a grade. Grades outside the band
// clamp to the nearest edge so callers never get a zero value.
func For(g models.GradeLevel) Characteristics {
	if g < models.MinGrade {
		g = models.MinGrade
	}
	if g > models.MaxGrade {
		g = models.MaxGrade
	}
	return table[g]
}

// BandOf returns the worksheet band for a grade.
func BandOf(g models.GradeLevel) Band {
	switch {
	case g <= 2:
		return BandEarlyPrimary
	case g <= 5:
		return BandPrimary
	default:
		return BandUpperPrimary
	}
}

// Rubric returns the grade-appropriate assessment rubric. Early primary
// grades get observational criteria; older grades get a scored rubric.
func Rubric(g models.GradeLevel) *models.AssessmentRubric {
	if BandOf(g) == BandEarlyPrimary {
		return &models.AssessmentRubric{
			Type:     "observational",
			Criteria: []string{"Participation", "Understanding", "Effort"},
			Scale:    "Excellent/Good/Needs Improvement",
		}
	}
	return &models.AssessmentRubric{
		Type:     "rubric_based",
		Criteria: []string{"Content Knowledge", "Application", "Communication"},
		Scale:    "4-point scale",
	}
}
