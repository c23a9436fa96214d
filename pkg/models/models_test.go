package models

import "testing"

func TestValidateGrades(t *testing.T) {
	tests := []struct {
		name    string
		grades  []GradeLevel
		wantErr bool
	}{
		{"single valid", []GradeLevel{3}, false},
		{"full band", []GradeLevel{1, 2, 3, 4, 5, 6, 7, 8}, false},
		{"empty", nil, true},
		{"zero", []GradeLevel{0}, true},
		{"above band", []GradeLevel{9}, true},
		{"negative", []GradeLevel{-1}, true},
		{"duplicate", []GradeLevel{3, 5, 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrades(tt.grades)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGrades(%v) error = %v, wantErr %v", tt.grades, err, tt.wantErr)
			}
		})
	}
}

func TestGradeLevelString(t *testing.T) {
	if got := GradeLevel(3).String(); got != "grade 3" {
		t.Errorf("String() = %q, want %q", got, "grade 3")
	}
}

func TestSortGrades(t *testing.T) {
	in := []GradeLevel{7, 2, 5}
	got := SortGrades(in)
	want := []GradeLevel{2, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortGrades = %v, want %v", got, want)
		}
	}
	if in[0] != 7 {
		t.Error("SortGrades must not mutate its input")
	}
}

func TestEnvelopeValidate(t *testing.T) {
	valid := RequestEnvelope{
		SessionID:  "s1",
		Text:       "hello",
		Modalities: []Modality{ModalityText},
		Context:    SessionContext{GradeLevels: []GradeLevel{3, 5}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid envelope rejected: %v", err)
	}

	tests := []struct {
		name string
		env  RequestEnvelope
	}{
		{"missing session", RequestEnvelope{Modalities: []Modality{ModalityText}}},
		{"no modalities", RequestEnvelope{SessionID: "s1"}},
		{"unknown modality", RequestEnvelope{SessionID: "s1", Modalities: []Modality{"video"}}},
		{"bad grades", RequestEnvelope{SessionID: "s1", Modalities: []Modality{ModalityText},
			Context: SessionContext{GradeLevels: []GradeLevel{12}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.env.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvelopeValidateAllowsEmptyGradeSet(t *testing.T) {
	env := RequestEnvelope{SessionID: "s1", Modalities: []Modality{ModalityText}}
	if err := env.Validate(); err != nil {
		t.Errorf("grade levels are optional: %v", err)
	}
}

func TestParseComplexity(t *testing.T) {
	tests := []struct {
		in   string
		want Complexity
	}{
		{"very_simple", ComplexityVerySimple},
		{"simple", ComplexitySimple},
		{"moderate", ComplexityModerate},
		{"complex", ComplexityComplex},
		{"very_complex", ComplexityVeryComplex},
		{"nonsense", ComplexityUnknown},
		{"", ComplexityUnknown},
	}
	for _, tt := range tests {
		if got := ParseComplexity(tt.in); got != tt.want {
			t.Errorf("ParseComplexity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComplexityOrdering(t *testing.T) {
	if !(ComplexitySimple < ComplexityModerate && ComplexityModerate < ComplexityComplex) {
		t.Error("complexity values must be ordered")
	}
}

func TestAttachmentSizeNil(t *testing.T) {
	var att *Attachment
	if att.Size() != 0 {
		t.Error("nil attachment must have size 0")
	}
}

func TestSessionLastMessage(t *testing.T) {
	var s Session
	if s.LastMessage() != nil {
		t.Error("empty session has no last message")
	}
	s.Messages = []Message{{ID: "a"}, {ID: "b"}}
	if got := s.LastMessage(); got == nil || got.ID != "b" {
		t.Errorf("LastMessage = %+v, want message b", got)
	}
}

func TestCulturalProfileEmpty(t *testing.T) {
	if !(&CulturalProfile{}).Empty() {
		t.Error("zero profile must be empty")
	}
	p := &CulturalProfile{Region: "punjab_farming", Crops: []string{"wheat"}}
	if p.Empty() {
		t.Error("populated profile must not be empty")
	}
}
