// Package rating computes strength estimates for canonical identities: an
// iterative ELO-style estimate over a shared rating table, and an
// opponent-adjusted performance rating as an order-independent cross-check.
package rating

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/enginelab/crosstable/internal/domain/aggregate"
	"github.com/enginelab/crosstable/internal/domain/identity"
)

// Fixed constants of the iterative scheme.
const (
	rounds = 10 // synchronous relaxation rounds

	minGamesForAdjustment = 5 // identities below this keep their baseline

	baseKFactor = 32

	ratingFloor   = 600
	ratingCeiling = 3000

	defaultBaseline = 1200
	randomBaseline  = 600 // zero-skill random mover

	referenceBaseline      = 2800 // top-tier reference engine
	referenceFloor         = 800
	eloPerStrengthPercent  = 28 // rating points per percent below full strength
	expectedScoreBellWidth = 400
)

var strengthPercentRe = regexp.MustCompile(`(\d+)`)

// Table is the shared rating state produced by the estimator. Pinned
// entries received a manual override and are excluded from adjustment.
type Table struct {
	ratings map[string]float64
	pinned  map[string]struct{}
}

// Rating returns the rating for a canonical name, if known.
func (t *Table) Rating(name string) (float64, bool) {
	r, ok := t.ratings[name]
	return r, ok
}

// Pinned reports whether a canonical name holds a manual override.
func (t *Table) Pinned(name string) bool {
	_, ok := t.pinned[name]
	return ok
}

// Len returns the number of rated identities.
func (t *Table) Len() int {
	return len(t.ratings)
}

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithOverrides installs manual rating overrides. Overridden identities are
// pinned: they keep their override value bit-identical through all rounds
// and act purely as fixed reference points.
func WithOverrides(overrides map[string]float64) Option {
	return func(e *Estimator) {
		for name, r := range overrides {
			e.overrides[name] = r
		}
	}
}

// Estimator runs the fixed-round synchronous relaxation over a rating
// table. All configuration is fixed at construction.
type Estimator struct {
	overrides map[string]float64
}

// NewEstimator creates an Estimator with configuration options.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{overrides: make(map[string]float64)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// baseline assigns the starting rating for an identity by family. A
// reference-family engine starts at the reference baseline, adjusted down
// by its declared strength percentage; the random mover starts at the zero
// skill baseline; everything else starts at the default.
func baseline(canonicalName string) float64 {
	id := identity.Parse(canonicalName)
	switch strings.ToLower(id.Family) {
	case "stockfish":
		if strings.Contains(id.Variant, "%") {
			if m := strengthPercentRe.FindStringSubmatch(id.Variant); m != nil {
				pct, err := strconv.Atoi(m[1])
				if err == nil {
					return math.Max(referenceFloor, referenceBaseline-float64(100-pct)*eloPerStrengthPercent)
				}
			}
		}
		return referenceBaseline
	case "random_opponent":
		return randomBaseline
	default:
		return defaultBaseline
	}
}

// expectedScore is the classical logistic expectation for self against an
// opponent rating.
func expectedScore(self, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-self)/expectedScoreBellWidth))
}

// Estimate initializes the table and runs the fixed number of rounds. Each
// round computes every adjustment from the round's starting snapshot and
// applies them simultaneously, so the result is independent of iteration
// order. The estimated rating is also written back to each accumulator.
func (e *Estimator) Estimate(engines map[string]*aggregate.Performance) *Table {
	t := &Table{
		ratings: make(map[string]float64, len(engines)),
		pinned:  make(map[string]struct{}),
	}
	for name := range engines {
		if r, ok := e.overrides[name]; ok {
			t.ratings[name] = r
			t.pinned[name] = struct{}{}
			continue
		}
		t.ratings[name] = baseline(name)
	}

	for round := 0; round < rounds; round++ {
		next := make(map[string]float64, len(t.ratings))
		for name, r := range t.ratings {
			next[name] = r
		}

		for name, p := range engines {
			if t.Pinned(name) {
				continue
			}
			if p.TotalGames < minGamesForAdjustment {
				continue
			}

			k := baseKFactor * (1 - 0.5*p.ReliabilityScore)
			var sum float64
			var n int
			for opponent, results := range p.Opponents {
				opponentRating, ok := t.ratings[opponent]
				if !ok {
					// No signal this round; not an error.
					continue
				}
				games := results.Games()
				if games == 0 {
					continue
				}
				actual := results.Score() / float64(games)
				sum += k * (actual - expectedScore(t.ratings[name], opponentRating))
				n++
			}
			if n == 0 {
				continue
			}
			adjusted := t.ratings[name] + sum/float64(n)
			next[name] = math.Max(ratingFloor, math.Min(ratingCeiling, adjusted))
		}

		t.ratings = next
	}

	for name, p := range engines {
		if r, ok := t.ratings[name]; ok {
			p.EstimatedRating = r
		}
	}
	return t
}
