// Package report assembles the final ranked, de-duplicated analysis record
// consumed by dashboards and other collaborators.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/enginelab/crosstable/internal/domain/aggregate"
	"github.com/enginelab/crosstable/internal/domain/model"
)

// minGamesForInclusion is the cut for unified rankings and engine details.
// Identities below it stay in raw aggregation but are excluded from output.
const minGamesForInclusion = 3

// RankingEntry is one row of the unified rankings.
type RankingEntry struct {
	Rank                 int     `json:"rank"`
	Name                 string  `json:"name"`
	EstimatedRating      float64 `json:"estimated_rating"`
	PerformanceRating    float64 `json:"performance_rating"`
	Games                int     `json:"games"`
	Score                float64 `json:"score"`
	WinRate              float64 `json:"win_rate"`
	ScorePercentage      float64 `json:"score_percentage"`
	Tournaments          int     `json:"tournaments"`
	Opponents            int     `json:"opponents"`
	ReliabilityScore     float64 `json:"reliability_score"`
	ReferenceEngineGames int     `json:"reference_engine_games"`
}

// ConsolidationSummary is the audit trail proving which raw names collapsed
// into which canonical identity.
type ConsolidationSummary struct {
	ConsolidatedEngines int                 `json:"consolidated_engines"`
	TotalRawNames       int                 `json:"total_raw_names"`
	ConsolidatedGroups  map[string][]string `json:"consolidated_groups"`
}

// EngineDetail is the full per-identity breakdown keyed by canonical name.
type EngineDetail struct {
	Performance         PerformanceDetail                `json:"performance"`
	Tournaments         []string                         `json:"tournaments"`
	Opponents           map[string]model.Tally           `json:"opponents"`
	TournamentBreakdown map[string]model.TournamentTally `json:"tournament_breakdown"`
}

// PerformanceDetail carries the identity-level counters and derived scores.
type PerformanceDetail struct {
	TotalGames        int     `json:"total_games"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Draws             int     `json:"draws"`
	Score             float64 `json:"score"`
	WinRate           float64 `json:"win_rate"`
	EstimatedRating   float64 `json:"estimated_rating"`
	PerformanceRating float64 `json:"performance_rating"`
	ReliabilityScore  float64 `json:"reliability_score"`
}

// ReferenceAchiever is an identity with at least one win or draw against a
// designated reference engine.
type ReferenceAchiever struct {
	Name            string  `json:"name"`
	ReferenceGames  int     `json:"reference_games"`
	Wins            int     `json:"wins_vs_reference"`
	Draws           int     `json:"draws_vs_reference"`
	Losses          int     `json:"losses_vs_reference"`
	EstimatedRating float64 `json:"estimated_rating"`
}

// TournamentSummary summarizes one tournament.
type TournamentSummary struct {
	Games   int      `json:"games"`
	Engines []string `json:"engines"`
}

// DateRange bounds the parseable game dates, ISO formatted.
type DateRange struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// CompactGame is the trimmed per-game record kept for date filtering by
// dashboard collaborators.
type CompactGame struct {
	White      string `json:"white"`
	Black      string `json:"black"`
	Result     string `json:"result"`
	Date       string `json:"date"`
	Tournament string `json:"tournament"`
}

// Summary carries the corpus-level totals.
type Summary struct {
	TotalGames                int `json:"total_games"`
	TotalEngines              int `json:"total_engines"`
	TotalTournaments          int `json:"total_tournaments"`
	EnginesWithSufficientData int `json:"engines_with_sufficient_data"`
}

// Report is the complete analysis output. JSON-equivalent structured data;
// ordering of all slices is deterministic for cross-run comparability.
type Report struct {
	ID                 string                       `json:"report_id"`
	GeneratedAt        time.Time                    `json:"generated_at"`
	Summary            Summary                      `json:"summary"`
	Consolidation      ConsolidationSummary         `json:"consolidation_summary"`
	DateRange          DateRange                    `json:"date_range"`
	Games              []CompactGame                `json:"games"`
	Tournaments        map[string]TournamentSummary `json:"tournaments"`
	UnifiedRankings    []RankingEntry               `json:"unified_rankings"`
	ReferenceAchievers []ReferenceAchiever          `json:"reference_achievers"`
	EngineDetails      map[string]EngineDetail      `json:"engine_details"`
}

// Compile assembles the report from the completed pipeline state. It only
// reads; no pipeline structure is retained or mutated. Ratings are read
// from the accumulators, which the estimator already filled in.
func Compile(agg *aggregate.Aggregator) *Report {
	engines := agg.Engines()

	r := &Report{
		ID:            uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		Tournaments:   make(map[string]TournamentSummary, len(agg.Tournaments())),
		EngineDetails: make(map[string]EngineDetail),
	}

	r.Summary = Summary{
		TotalGames:       len(agg.NormalizedGames()),
		TotalEngines:     len(engines),
		TotalTournaments: len(agg.Tournaments()),
	}
	for _, p := range engines {
		if p.TotalGames >= minGamesForInclusion {
			r.Summary.EnginesWithSufficientData++
		}
	}

	groups := agg.Consolidation()
	totalRaw := 0
	for _, raws := range groups {
		totalRaw += len(raws)
	}
	r.Consolidation = ConsolidationSummary{
		ConsolidatedEngines: len(groups),
		TotalRawNames:       totalRaw,
		ConsolidatedGroups:  groups,
	}

	for name, info := range agg.Tournaments() {
		r.Tournaments[name] = TournamentSummary{
			Games:   info.Games,
			Engines: sortedKeys(info.Engines),
		}
	}

	r.Games, r.DateRange = compactGames(agg.NormalizedGames())
	r.UnifiedRankings = rankings(engines)
	r.ReferenceAchievers = achievers(engines)

	for name, p := range engines {
		if p.TotalGames < minGamesForInclusion {
			continue
		}
		r.EngineDetails[name] = detail(p)
	}
	return r
}

// rankings returns identities with enough data ordered by descending
// estimated rating, rank 1..N. Name breaks ties so output is reproducible.
func rankings(engines map[string]*aggregate.Performance) []RankingEntry {
	qualified := make([]*aggregate.Performance, 0, len(engines))
	for _, p := range engines {
		if p.TotalGames >= minGamesForInclusion {
			qualified = append(qualified, p)
		}
	}
	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].EstimatedRating != qualified[j].EstimatedRating {
			return qualified[i].EstimatedRating > qualified[j].EstimatedRating
		}
		return qualified[i].Name < qualified[j].Name
	})

	entries := make([]RankingEntry, len(qualified))
	for i, p := range qualified {
		entries[i] = RankingEntry{
			Rank:                 i + 1,
			Name:                 p.Name,
			EstimatedRating:      round1(p.EstimatedRating),
			PerformanceRating:    round1(p.PerformanceRating),
			Games:                p.TotalGames,
			Score:                p.Score(),
			WinRate:              round2(p.WinRate()),
			ScorePercentage:      round2(p.ScorePercentage()),
			Tournaments:          len(p.Tournaments),
			Opponents:            len(p.Opponents),
			ReliabilityScore:     round3(p.ReliabilityScore),
			ReferenceEngineGames: len(p.ReferenceGames),
		}
	}
	return entries
}

// achievers lists identities with a win or draw against a reference engine,
// sorted by reference-game count.
func achievers(engines map[string]*aggregate.Performance) []ReferenceAchiever {
	var out []ReferenceAchiever
	for _, p := range engines {
		if len(p.ReferenceGames) == 0 {
			continue
		}
		wins, draws := p.ReferenceWins(), p.ReferenceDraws()
		if wins == 0 && draws == 0 {
			continue
		}
		out = append(out, ReferenceAchiever{
			Name:            p.Name,
			ReferenceGames:  len(p.ReferenceGames),
			Wins:            wins,
			Draws:           draws,
			Losses:          len(p.ReferenceGames) - wins - draws,
			EstimatedRating: round1(p.EstimatedRating),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReferenceGames != out[j].ReferenceGames {
			return out[i].ReferenceGames > out[j].ReferenceGames
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func detail(p *aggregate.Performance) EngineDetail {
	opponents := make(map[string]model.Tally, len(p.Opponents))
	for name, tl := range p.Opponents {
		opponents[name] = *tl
	}
	breakdown := make(map[string]model.TournamentTally, len(p.TournamentPerformance))
	for name, tt := range p.TournamentPerformance {
		breakdown[name] = *tt
	}
	return EngineDetail{
		Performance: PerformanceDetail{
			TotalGames:        p.TotalGames,
			Wins:              p.Wins,
			Losses:            p.Losses,
			Draws:             p.Draws,
			Score:             p.Score(),
			WinRate:           round2(p.WinRate()),
			EstimatedRating:   round1(p.EstimatedRating),
			PerformanceRating: round1(p.PerformanceRating),
			ReliabilityScore:  round3(p.ReliabilityScore),
		},
		Tournaments:         sortedKeys(p.Tournaments),
		Opponents:           opponents,
		TournamentBreakdown: breakdown,
	}
}

// compactGames keeps only dated games in ISO form and derives the range.
func compactGames(games []model.GameRecord) ([]CompactGame, DateRange) {
	var out []CompactGame
	var dr DateRange
	for _, g := range games {
		if !g.HasDate() {
			continue
		}
		iso := g.Date.Format("2006-01-02")
		out = append(out, CompactGame{
			White:      g.White,
			Black:      g.Black,
			Result:     string(g.Result),
			Date:       iso,
			Tournament: g.Tournament,
		})
		if dr.Min == "" || iso < dr.Min {
			dr.Min = iso
		}
		if dr.Max == "" || iso > dr.Max {
			dr.Max = iso
		}
	}
	return out, dr
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
