package models

import (
	"fmt"
	"sort"
)

// GradeLevel is a primary school grade in the 1-8 band this system serves.
type GradeLevel int

// MinGrade and MaxGrade bound the grade band supported for differentiation.
const (
	MinGrade GradeLevel = 1
	MaxGrade GradeLevel = 8
)

// Valid returns true if the grade is within the supported band.
func (g GradeLevel) Valid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// String returns a human-readable representation such as "grade 3".
func (g GradeLevel) String() string {
	return fmt.Sprintf("grade %d", int(g))
}

// ValidateGrades checks that a requested grade set is non-empty, in band,
// and free of duplicates. The slice itself is not modified.
func ValidateGrades(grades []GradeLevel) error {
	if len(grades) == 0 {
		return fmt.Errorf("no grade levels requested")
	}
	seen := make(map[GradeLevel]bool, len(grades))
	for _, g := range grades {
		if !g.Valid() {
			return fmt.Errorf("grade level %d outside supported band %d-%d", int(g), int(MinGrade), int(MaxGrade))
		}
		if seen[g] {
			return fmt.Errorf("duplicate grade level %d", int(g))
		}
		seen[g] = true
	}
	return nil
}

// SortGrades returns a sorted copy of the given grades in ascending order.
func SortGrades(grades []GradeLevel) []GradeLevel {
	out := make([]GradeLevel, len(grades))
	copy(out, grades)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
