package pipeline

import "strings"

// subjectKeywords score extracted text toward a subject area when the
// analyzer returns no guess.
var subjectKeywords = map[string][]string{
	"mathematics": {"addition", "subtraction", "multiply", "divide", "equation", "number", "fraction", "=", "+", "-"},
	"science":     {"experiment", "observation", "hypothesis", "plant", "animal", "water", "air", "energy", "cycle"},
	"social_studies": {"history", "geography", "community", "government", "culture", "society", "map", "village"},
}

// detectSubject picks the best-scoring subject for the text, or "general"
// when nothing matches.
func detectSubject(text string) string {
	lower := strings.ToLower(text)

	best, bestScore := "general", 0
	// Fixed iteration order keeps detection deterministic on ties.
	for _, subject := range []string{"mathematics", "science", "social_studies"} {
		score := 0
		for _, kw := range subjectKeywords[subject] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = subject, score
		}
	}
	return best
}
