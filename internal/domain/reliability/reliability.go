// Package reliability derives a 0..1 confidence score per identity from
// sample size and opponent/tournament diversity. The score damps how
// aggressively the rating estimator moves an identity per round.
package reliability

import (
	"math"

	"github.com/enginelab/crosstable/internal/domain/aggregate"
)

// Fixed constants of the design, not tunable per call.
const (
	gameSaturation       = 100 // game factor saturates at this many games
	opponentSaturation   = 10  // opponent factor saturates at this many distinct opponents
	tournamentSaturation = 5   // tournament factor saturates at this many tournaments

	gameWeight       = 0.5
	opponentWeight   = 0.3
	tournamentWeight = 0.2
)

// Score computes the reliability score for one identity. The game factor
// grows logarithmically and saturates at gameSaturation games; the max(1,.)
// guard keeps ln defined for an empty accumulator.
func Score(p *aggregate.Performance) float64 {
	gameFactor := math.Min(1, math.Log(math.Max(1, float64(p.TotalGames)))/math.Log(gameSaturation))
	opponentFactor := math.Min(1, float64(len(p.Opponents))/opponentSaturation)
	tournamentFactor := math.Min(1, float64(len(p.Tournaments))/tournamentSaturation)

	return gameWeight*gameFactor + opponentWeight*opponentFactor + tournamentWeight*tournamentFactor
}

// Apply computes and stores the reliability score for every accumulator.
func Apply(engines map[string]*aggregate.Performance) {
	for _, p := range engines {
		p.ReliabilityScore = Score(p)
	}
}
