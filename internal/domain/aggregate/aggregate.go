// Package aggregate folds validated game records into per-identity
// performance accumulators, keyed by canonical engine name.
package aggregate

import (
	"sort"
	"strings"

	"github.com/enginelab/crosstable/internal/domain/model"
)

// referenceFamilyToken marks designated reference engines. Games against an
// opponent whose canonical name contains this token (case-insensitively)
// are collected separately for the achievers section of the report.
const referenceFamilyToken = "stockfish"

// IsReferenceEngine reports whether a canonical name belongs to a
// designated reference engine family.
func IsReferenceEngine(canonicalName string) bool {
	return strings.Contains(strings.ToLower(canonicalName), referenceFamilyToken)
}

// Performance accumulates one canonical identity's results across all
// tournaments. Created on first sighting, mutated only by AddGame, never
// deleted. Ratings and reliability are derived fields recomputed wholesale
// by later stages.
type Performance struct {
	Name string

	TotalGames int
	Wins       int
	Losses     int
	Draws      int

	Tournaments           map[string]struct{}
	Opponents             map[string]*model.Tally
	TournamentPerformance map[string]*model.TournamentTally
	ReferenceGames        []model.GameRecord

	EstimatedRating   float64
	PerformanceRating float64
	ReliabilityScore  float64
}

// NewPerformance creates an empty accumulator for a canonical identity.
func NewPerformance(name string) *Performance {
	return &Performance{
		Name:                  name,
		Tournaments:           make(map[string]struct{}),
		Opponents:             make(map[string]*model.Tally),
		TournamentPerformance: make(map[string]*model.TournamentTally),
	}
}

// AddGame records one side of a game. The record must already carry
// canonical names; opponent is the other side's canonical name. The
// identity-level, opponent-level, and tournament-level counters move
// together so they can never drift apart.
func (p *Performance) AddGame(g model.GameRecord, playingWhite bool) {
	opponent := g.Black
	if !playingWhite {
		opponent = g.White
	}

	p.TotalGames++
	p.Tournaments[g.Tournament] = struct{}{}

	// Creation on first access is explicit: no auto-vivifying map semantics.
	opp, ok := p.Opponents[opponent]
	if !ok {
		opp = &model.Tally{}
		p.Opponents[opponent] = opp
	}
	tt, ok := p.TournamentPerformance[g.Tournament]
	if !ok {
		tt = &model.TournamentTally{}
		p.TournamentPerformance[g.Tournament] = tt
	}
	tt.Games++

	if IsReferenceEngine(opponent) {
		p.ReferenceGames = append(p.ReferenceGames, g)
	}

	switch {
	case g.Result == model.Draw:
		p.Draws++
		opp.Draws++
		tt.Draws++
	case (g.Result == model.WhiteWin) == playingWhite:
		p.Wins++
		opp.Wins++
		tt.Wins++
	default:
		p.Losses++
		opp.Losses++
		tt.Losses++
	}
}

// Score returns wins plus half a point per draw.
func (p *Performance) Score() float64 {
	return float64(p.Wins) + 0.5*float64(p.Draws)
}

// WinRate returns the win percentage, 0 for an empty accumulator.
func (p *Performance) WinRate() float64 {
	if p.TotalGames == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.TotalGames) * 100
}

// ScorePercentage returns the score as a percentage of total games.
func (p *Performance) ScorePercentage() float64 {
	if p.TotalGames == 0 {
		return 0
	}
	return p.Score() / float64(p.TotalGames) * 100
}

// ReferenceWins counts wins against reference engines.
func (p *Performance) ReferenceWins() int {
	n := 0
	for _, g := range p.ReferenceGames {
		if g.Winner() == p.Name {
			n++
		}
	}
	return n
}

// ReferenceDraws counts draws against reference engines.
func (p *Performance) ReferenceDraws() int {
	n := 0
	for _, g := range p.ReferenceGames {
		if g.Result == model.Draw {
			n++
		}
	}
	return n
}

// TournamentInfo summarizes one tournament for the report.
type TournamentInfo struct {
	Games   int
	Engines map[string]struct{}
}

// NormalizeFunc resolves a raw engine name to its canonical name.
type NormalizeFunc func(raw string) string

// Aggregator folds game records into Performance accumulators. It also
// keeps the consolidation provenance: which raw spellings collapsed into
// which canonical identity.
type Aggregator struct {
	normalize NormalizeFunc

	engines     map[string]*Performance
	rawNames    map[string]map[string]struct{}
	tournaments map[string]*TournamentInfo
	normalized  []model.GameRecord
}

// NewAggregator creates an Aggregator using the given normalization
// function for both sides of every game.
func NewAggregator(normalize NormalizeFunc) *Aggregator {
	return &Aggregator{
		normalize:   normalize,
		engines:     make(map[string]*Performance),
		rawNames:    make(map[string]map[string]struct{}),
		tournaments: make(map[string]*TournamentInfo),
	}
}

// Add folds one game into both sides' accumulators. Self-play is passed
// through: if both sides normalize identically the single accumulator
// receives two updates.
func (a *Aggregator) Add(g model.GameRecord) {
	canonicalWhite := a.normalize(g.White)
	canonicalBlack := a.normalize(g.Black)

	a.recordRawName(canonicalWhite, g.White)
	a.recordRawName(canonicalBlack, g.Black)

	normalized := g
	normalized.White = canonicalWhite
	normalized.Black = canonicalBlack
	a.normalized = append(a.normalized, normalized)

	t, ok := a.tournaments[g.Tournament]
	if !ok {
		t = &TournamentInfo{Engines: make(map[string]struct{})}
		a.tournaments[g.Tournament] = t
	}
	t.Games++
	t.Engines[canonicalWhite] = struct{}{}
	t.Engines[canonicalBlack] = struct{}{}

	a.engine(canonicalWhite).AddGame(normalized, true)
	a.engine(canonicalBlack).AddGame(normalized, false)
}

// Aggregate folds a whole batch and returns the accumulator map. The fold
// is order-independent for final totals.
func (a *Aggregator) Aggregate(games []model.GameRecord) map[string]*Performance {
	for _, g := range games {
		a.Add(g)
	}
	return a.engines
}

// Engines returns the accumulator map.
func (a *Aggregator) Engines() map[string]*Performance {
	return a.engines
}

// NormalizedGames returns every folded game with canonical names
// substituted, in ingestion order.
func (a *Aggregator) NormalizedGames() []model.GameRecord {
	return a.normalized
}

// Tournaments returns per-tournament game counts and participants.
func (a *Aggregator) Tournaments() map[string]*TournamentInfo {
	return a.tournaments
}

// Consolidation returns the audit trail: canonical name to the sorted raw
// spellings that fed it.
func (a *Aggregator) Consolidation() map[string][]string {
	groups := make(map[string][]string, len(a.rawNames))
	for canonical, raws := range a.rawNames {
		names := make([]string, 0, len(raws))
		for raw := range raws {
			names = append(names, raw)
		}
		sort.Strings(names)
		groups[canonical] = names
	}
	return groups
}

func (a *Aggregator) recordRawName(canonical, raw string) {
	set, ok := a.rawNames[canonical]
	if !ok {
		set = make(map[string]struct{})
		a.rawNames[canonical] = set
	}
	set[raw] = struct{}{}
}

func (a *Aggregator) engine(canonical string) *Performance {
	p, ok := a.engines[canonical]
	if !ok {
		p = NewPerformance(canonical)
		a.engines[canonical] = p
	}
	return p
}
