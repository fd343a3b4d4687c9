// Package mapping loads the manual name-consolidation table: which raw
// engine name spellings collapse into which canonical identity, plus
// optional per-identity rating overrides. The tables are plain data handed
// to the normalizer and the rating estimator.
package mapping

import (
	"errors"
	"fmt"
	"os"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Engine names contain dots ("SlowMate_v1.0"), so the koanf key delimiter
// must be something that can never appear in a name.
const (
	keyDelimiter      = "::"
	consolidationsKey = "name_consolidation::consolidations"
)

// Tables holds the loaded override tables. Overrides keys are lowercased
// raw names; RatingOverrides keys are canonical names.
type Tables struct {
	Overrides       map[string]string
	RatingOverrides map[string]float64

	// Groups preserves the file's canonical -> variants structure for the
	// consolidation audit trail.
	Groups map[string][]string
}

// Empty returns tables with no entries, the degraded mode used when no
// mapping file is configured.
func Empty() Tables {
	return Tables{
		Overrides:       make(map[string]string),
		RatingOverrides: make(map[string]float64),
		Groups:          make(map[string][]string),
	}
}

// Load reads and validates a consolidation file. A missing file yields
// ErrNotFound so callers can degrade to heuristic-only normalization; a
// structurally invalid file is a configuration error and fails the run.
func Load(path string) (Tables, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Empty(), fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Empty(), fmt.Errorf("%w: %v", ErrLoad, err)
	}

	k := koanf.New(keyDelimiter)
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return Empty(), fmt.Errorf("%w: %v", ErrLoad, err)
	}

	raw := k.Get(consolidationsKey)
	if raw == nil {
		return Empty(), nil
	}
	groups, ok := raw.(map[string]interface{})
	if !ok {
		return Empty(), fmt.Errorf("%w: consolidations must be an object", ErrInvalidMapping)
	}

	t := Empty()
	for canonical, entry := range groups {
		variants, override, err := parseGroup(canonical, entry)
		if err != nil {
			return Empty(), err
		}
		t.Groups[canonical] = variants
		if override != nil {
			t.RatingOverrides[canonical] = *override
		}
		for _, variant := range variants {
			registerVariant(t.Overrides, variant, canonical)
		}
	}
	return t, nil
}

// parseGroup accepts both the legacy array form ("canonical": [variants])
// and the object form ("canonical": {"variants": [...], "rating_override": N}).
func parseGroup(canonical string, entry interface{}) ([]string, *float64, error) {
	switch v := entry.(type) {
	case []interface{}:
		variants, err := stringSlice(canonical, v)
		return variants, nil, err
	case map[string]interface{}:
		rawVariants, ok := v["variants"].([]interface{})
		if !ok {
			return nil, nil, fmt.Errorf("%w: group %q has no variants list", ErrInvalidMapping, canonical)
		}
		variants, err := stringSlice(canonical, rawVariants)
		if err != nil {
			return nil, nil, err
		}
		if rawOverride, present := v["rating_override"]; present && rawOverride != nil {
			override, ok := rawOverride.(float64)
			if !ok {
				return nil, nil, fmt.Errorf("%w: group %q has a non-numeric rating_override", ErrInvalidMapping, canonical)
			}
			return variants, &override, nil
		}
		return variants, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: group %q must be a list or an object", ErrInvalidMapping, canonical)
	}
}

func stringSlice(canonical string, raw []interface{}) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: group %q has a non-string variant", ErrInvalidMapping, canonical)
		}
		out = append(out, s)
	}
	return out, nil
}

// registerVariant records a raw spelling and its space/underscore swapped
// forms, all lowercased. The normalizer matches case-insensitively, so only
// the punctuation variants need spelling out.
func registerVariant(overrides map[string]string, variant, canonical string) {
	lower := strings.ToLower(strings.TrimSpace(variant))
	overrides[lower] = canonical
	overrides[strings.ReplaceAll(lower, "_", " ")] = canonical
	overrides[strings.ReplaceAll(lower, " ", "_")] = canonical
}

// IsNotFound reports whether err only means the mapping file is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
