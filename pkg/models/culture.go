package models

// CulturalProfile is static localization metadata for one region, used to
// bias generation toward locally familiar examples. Loaded once at process
// start and never mutated. Optional fields that a region's entry omits stay
// empty; absence carries no other meaning.
type CulturalProfile struct {
	// Region is the profile key (e.g. "maharashtra_rural").
	Region string `json:"region"`
	// CulturalElements are broad themes of daily life in the region.
	CulturalElements []string `json:"cultural_elements,omitempty"`
	// Festivals are locally celebrated festivals.
	Festivals []string `json:"festivals,omitempty"`
	// Occupations are common traditional occupations.
	Occupations []string `json:"occupations,omitempty"`
	// Crops are locally grown crops, for agricultural examples.
	Crops []string `json:"crops,omitempty"`
	// Foods are common local foods.
	Foods []string `json:"foods,omitempty"`
	// Animals are animals children in the region commonly know.
	Animals []string `json:"animals,omitempty"`
	// Script is the writing system of the regional language.
	Script string `json:"script,omitempty"`
	// Honorifics are respectful forms of address used locally.
	Honorifics []string `json:"honorifics,omitempty"`
	// Vocabulary maps common English terms to local-language equivalents.
	Vocabulary map[string]string `json:"vocabulary,omitempty"`
	// TeachingTips are region-specific classroom suggestions.
	TeachingTips []string `json:"teaching_tips,omitempty"`
	// Sensitivities are topics to handle carefully or avoid.
	Sensitivities []string `json:"sensitivities,omitempty"`
}

// Empty reports whether the profile carries no usable bias content.
func (p *CulturalProfile) Empty() bool {
	if p == nil {
		return true
	}
	return len(p.CulturalElements) == 0 && len(p.Festivals) == 0 &&
		len(p.Occupations) == 0 && len(p.Crops) == 0 && len(p.Foods) == 0 &&
		len(p.Animals) == 0 && len(p.Vocabulary) == 0
}
