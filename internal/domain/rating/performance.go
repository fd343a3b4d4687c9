package rating

import (
	"math"

	"github.com/enginelab/crosstable/internal/domain/aggregate"
)

// minGamesForPerformance is the report-inclusion threshold; below it the
// performance rating falls back to the iterative estimate.
const minGamesForPerformance = 3

// PerformanceRating computes the classical chess performance rating: the
// rating the identity's observed score implies given its opponents'
// ratings. Per-opponent values are combined as a games-weighted mean, so
// opponents faced more often count proportionally more.
func PerformanceRating(p *aggregate.Performance, t *Table) float64 {
	if p.TotalGames < minGamesForPerformance {
		return p.EstimatedRating
	}

	var weighted float64
	var games int
	for opponent, results := range p.Opponents {
		opponentRating, ok := t.Rating(opponent)
		if !ok {
			continue
		}
		n := results.Games()
		if n == 0 {
			continue
		}
		score := results.Score() / float64(n)

		var perf float64
		switch score {
		case 1.0:
			perf = opponentRating + expectedScoreBellWidth
		case 0.0:
			perf = opponentRating - expectedScoreBellWidth
		default:
			perf = opponentRating + expectedScoreBellWidth*math.Log10(score/(1-score))
		}
		weighted += perf * float64(n)
		games += n
	}

	if games == 0 {
		return p.EstimatedRating
	}
	return weighted / float64(games)
}

// ApplyPerformanceRatings computes and stores the performance rating for
// every accumulator.
func ApplyPerformanceRatings(engines map[string]*aggregate.Performance, t *Table) {
	for _, p := range engines {
		p.PerformanceRating = PerformanceRating(p, t)
	}
}
