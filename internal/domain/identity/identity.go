// Package identity maps raw engine name strings to stable canonical
// identities so the same logical engine aggregates under one key no matter
// how a tournament spelled its name.
package identity

import (
	"regexp"
	"strings"
)

// Variant markers that mean "the default build" and are therefore dropped
// from canonical names.
const (
	VariantRelease = "RELEASE"
	VariantStable  = "STABLE"
)

// Identity is the deduplicated (family, version, variant) triple for one
// logical engine.
type Identity struct {
	Family  string
	Version string
	Variant string
}

// CanonicalName renders the identity as its aggregation key. The rendering
// is injective with respect to the triple: identities with different
// canonical names are different engines.
func (id Identity) CanonicalName() string {
	name := id.Family + "_v" + id.Version
	if id.Variant != "" && id.Variant != VariantRelease && id.Variant != VariantStable {
		name += "_" + id.Variant
	}
	return name
}

// Known engine family patterns, tried in order after the special families.
var familyPatterns = []struct {
	re     *regexp.Regexp
	family string
}{
	{regexp.MustCompile(`(?i)slowmate`), "SlowMate"},
	{regexp.MustCompile(`(?i)cecilia`), "Cecilia"},
	{regexp.MustCompile(`(?i)cece`), "Cece"},
	{regexp.MustCompile(`(?i)v7p3rai`), "V7P3RAI"},
}

// Version extraction patterns, first match wins.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`v(\d+\.\d+)`),
	regexp.MustCompile(`v(\d+)`),
	regexp.MustCompile(`_(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`_(\d+\.\d+)`),
	regexp.MustCompile(`\s(\d+\.\d+)`),
}

var (
	percentRe      = regexp.MustCompile(`(\d+)%`)
	looseVersionRe = regexp.MustCompile(`v?(\d+\.?\d*\.?\d*)`)
	upperTokenRe   = regexp.MustCompile(`^[A-Z]+$`)
)

// Fixed variant vocabulary. Trailing tokens outside this table never become
// a variant; inventing variants from arbitrary text would split identities.
var variantVocabulary = map[string]string{
	"ALPHA":        "ALPHA",
	"BETA":         "BETA",
	"DELTA":        "DELTA",
	"EXP":          "EXPERIMENTAL",
	"EXPERIMENTAL": "EXPERIMENTAL",
	"REL":          VariantRelease,
	"RELEASE":      VariantRelease,
	"STABLE":       VariantStable,
}

// Parse extracts an Identity from a raw engine name using the fixed
// heuristic tables. It is a pure function: identical input always yields an
// identical identity within and across runs.
func Parse(raw string) Identity {
	name := strings.TrimSpace(raw)
	lower := strings.ToLower(name)

	// Special families take priority over generic family matching, so a
	// name carrying both tokens lands in the single combined family.
	if strings.Contains(lower, "stockfish") {
		return Identity{Family: "Stockfish", Version: extractVersion(name), Variant: extractPercent(name)}
	}
	if strings.Contains(lower, "random") && strings.Contains(lower, "opponent") {
		return Identity{Family: "Random_Opponent", Version: "1.0"}
	}
	if strings.Contains(lower, "copycat") {
		version := "1.0"
		if m := looseVersionRe.FindStringSubmatch(name); m != nil && m[1] != "" {
			version = strings.TrimSuffix(strings.TrimSuffix(m[1], "."), ".")
		}
		return Identity{Family: "Copycat", Version: version}
	}

	family := ""
	for _, fp := range familyPatterns {
		if fp.re.MatchString(name) {
			family = fp.family
			break
		}
	}
	if family == "" {
		// Fallback: token before the first underscore or space.
		if fields := strings.FieldsFunc(name, func(r rune) bool {
			return r == '_' || r == ' '
		}); len(fields) > 0 {
			family = fields[0]
		} else {
			family = "Unknown"
		}
	}

	return Identity{
		Family:  family,
		Version: extractVersion(name),
		Variant: extractVariant(name),
	}
}

func extractVersion(name string) string {
	for _, re := range versionPatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return "1.0"
}

func extractPercent(name string) string {
	if m := percentRe.FindStringSubmatch(name); m != nil {
		return m[1] + "%"
	}
	return ""
}

// extractVariant looks at the trailing token of the name. Only tokens from
// the fixed vocabulary qualify; everything else is no variant.
func extractVariant(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == ' '
	})
	if len(fields) < 2 {
		return ""
	}
	last := fields[len(fields)-1]
	if !upperTokenRe.MatchString(last) {
		return ""
	}
	if v, ok := variantVocabulary[last]; ok {
		return v
	}
	return ""
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithOverrides installs the manual raw-name override table. Keys are
// matched case-insensitively; the table is copied so later mutation by the
// caller cannot change normalization mid-run.
func WithOverrides(overrides map[string]string) Option {
	return func(n *Normalizer) {
		for raw, canonical := range overrides {
			n.overrides[strings.ToLower(strings.TrimSpace(raw))] = canonical
		}
	}
}

// Normalizer resolves raw engine names to canonical names, consulting the
// manual override table before the heuristic tables. All state is fixed at
// construction; Normalize is a pure function of its input.
type Normalizer struct {
	overrides map[string]string
}

// NewNormalizer creates a Normalizer with configuration options.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{overrides: make(map[string]string)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the canonical name for a raw engine name. An override
// hit is authoritative and bypasses all heuristics.
func (n *Normalizer) Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if canonical, ok := n.overrides[strings.ToLower(name)]; ok {
		return canonical
	}
	return Parse(name).CanonicalName()
}
