package culture

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveKnownRegion(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	p, ok := r.Resolve("maharashtra_rural")
	if !ok {
		t.Fatal("expected maharashtra_rural in the default table")
	}
	if p.Region != "maharashtra_rural" {
		t.Errorf("region = %q, want maharashtra_rural", p.Region)
	}
	if p.Script != "devanagari" {
		t.Errorf("script = %q, want devanagari", p.Script)
	}
	if len(p.Festivals) == 0 {
		t.Error("expected festivals for maharashtra_rural")
	}
}

func TestResolveUnknownRegion(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	p, ok := r.Resolve("atlantis_coastal")
	if ok {
		t.Error("unknown region should not resolve")
	}
	if p != nil {
		t.Error("unknown region should yield a nil profile")
	}
}

// Entries omit teaching_tips and sensitivities inconsistently; missing
// optional fields stay empty rather than inheriting any default.
func TestMissingOptionalFieldsStayEmpty(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	p, ok := r.Resolve("punjab_farming")
	if !ok {
		t.Fatal("expected punjab_farming in the default table")
	}
	if len(p.Sensitivities) != 0 {
		t.Errorf("punjab_farming has no sensitivities entry, got %v", p.Sensitivities)
	}

	p, ok = r.Resolve("default_rural")
	if !ok {
		t.Fatal("expected default_rural in the default table")
	}
	if len(p.TeachingTips) != 0 || len(p.Sensitivities) != 0 {
		t.Error("default_rural optional fields should be empty")
	}
}

func TestNewResolverFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	data := `{"test_region": {"cultural_elements": ["fishing"], "script": "latin"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	r, err := NewResolverFromFile(path)
	if err != nil {
		t.Fatalf("NewResolverFromFile: %v", err)
	}

	if _, ok := r.Resolve("maharashtra_rural"); ok {
		t.Error("file table should replace embedded defaults, not merge")
	}
	p, ok := r.Resolve("test_region")
	if !ok || p.Script != "latin" {
		t.Errorf("expected test_region from file, got %+v ok=%v", p, ok)
	}
}

func TestRegionsSorted(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	regions := r.Regions()
	if len(regions) < 3 {
		t.Fatalf("expected several regions, got %d", len(regions))
	}
	for i := 1; i < len(regions); i++ {
		if regions[i-1] >= regions[i] {
			t.Errorf("regions not sorted: %q before %q", regions[i-1], regions[i])
		}
	}
}
