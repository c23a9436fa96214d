// Package culture provides the static region lookup used to bias content
// generation toward locally familiar examples. The table is loaded once at
// process start and never reloaded; resolution is a pure read.
package culture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/guruai/guruai/pkg/models"
)

//go:embed cultural_contexts.json
var defaultTable []byte

// Resolver answers region lookups against an immutable table.
type Resolver struct {
	profiles map[string]*models.CulturalProfile
}

// NewResolver builds a resolver from the embedded default table.
func NewResolver() (*Resolver, error) {
	return newFromBytes(defaultTable)
}

// NewResolverFromFile builds a resolver from a JSON table on disk,
// replacing the embedded defaults entirely.
func NewResolverFromFile(path string) (*Resolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cultural contexts: %w", err)
	}
	return newFromBytes(raw)
}

func newFromBytes(raw []byte) (*Resolver, error) {
	var table map[string]*models.CulturalProfile
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode cultural contexts: %w", err)
	}
	for key, profile := range table {
		profile.Region = key
	}
	return &Resolver{profiles: table}, nil
}

// Resolve looks up the profile for a region key. The second return value
// is false when the region is unknown; callers treat that as "no
// localization bias", not as an error.
func (r *Resolver) Resolve(regionKey string) (*models.CulturalProfile, bool) {
	p, ok := r.profiles[regionKey]
	return p, ok
}

// Regions returns all known region keys in sorted order.
func (r *Resolver) Regions() []string {
	keys := make([]string, 0, len(r.profiles))
	for k := range r.profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
