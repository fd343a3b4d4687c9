package rating_test

import (
	"testing"

	"github.com/enginelab/crosstable/internal/domain/aggregate"
	"github.com/enginelab/crosstable/internal/domain/model"
	"github.com/enginelab/crosstable/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPerformanceRating(t *testing.T) {
	Convey("Given an identity that sweeps a pinned reference engine", t, func() {
		games := repeat(5, model.GameRecord{
			White: "Challenger_v1.0", Black: "Stockfish_v1.0", Result: model.WhiteWin, Tournament: "t1",
		})
		engines := buildEngines(games)
		table := rating.NewEstimator(rating.WithOverrides(map[string]float64{
			"Stockfish_v1.0": 2800,
		})).Estimate(engines)

		Convey("Then a perfect score should imply opponent rating plus 400", func() {
			perf := rating.PerformanceRating(engines["Challenger_v1.0"], table)
			So(perf, ShouldEqual, 3200)
		})

		Convey("Then a zero score should imply opponent rating minus 400", func() {
			perf := rating.PerformanceRating(engines["Stockfish_v1.0"], table)
			So(perf, ShouldEqual, engines["Challenger_v1.0"].EstimatedRating-400)
		})
	})

	Convey("Given an identity with fewer than three games", t, func() {
		games := repeat(2, model.GameRecord{
			White: "Sparse_v1.0", Black: "B_v1.0", Result: model.WhiteWin, Tournament: "t1",
		})
		engines := buildEngines(games)
		table := rating.NewEstimator().Estimate(engines)

		Convey("Then the performance rating should fall back to the estimate", func() {
			perf := rating.PerformanceRating(engines["Sparse_v1.0"], table)
			So(perf, ShouldEqual, engines["Sparse_v1.0"].EstimatedRating)
		})
	})

	Convey("Given mixed results against opponents faced unevenly", t, func() {
		games := append(
			repeat(8, model.GameRecord{White: "X_v1.0", Black: "Strong_v1.0", Result: model.Draw, Tournament: "t1"}),
			repeat(2, model.GameRecord{White: "X_v1.0", Black: "Weak_v1.0", Result: model.Draw, Tournament: "t1"})...,
		)
		engines := buildEngines(games)
		table := rating.NewEstimator(rating.WithOverrides(map[string]float64{
			"Strong_v1.0": 2000,
			"Weak_v1.0":   1000,
		})).Estimate(engines)

		Convey("Then the result should be the games-weighted mean", func() {
			// 50% against each opponent implies the opponent's own rating;
			// 8 games at 2000 and 2 games at 1000 weight to 1800.
			perf := rating.PerformanceRating(engines["X_v1.0"], table)
			So(perf, ShouldAlmostEqual, (2000*8+1000*2)/10.0, 1e-9)
		})
	})

	Convey("Given an identity whose only opponents are unrated", t, func() {
		games := repeat(4, model.GameRecord{
			White: "Lonely_v1.0", Black: "Ghost_v1.0", Result: model.WhiteWin, Tournament: "t1",
		})
		engines := buildEngines(games)
		// Build a table that never saw the opponent.
		table := rating.NewEstimator().Estimate(map[string]*aggregate.Performance{
			"Lonely_v1.0": engines["Lonely_v1.0"],
		})

		Convey("Then the performance rating should fall back to the estimate", func() {
			perf := rating.PerformanceRating(engines["Lonely_v1.0"], table)
			So(perf, ShouldEqual, engines["Lonely_v1.0"].EstimatedRating)
		})
	})

	Convey("Given ApplyPerformanceRatings over the whole map", t, func() {
		games := repeat(5, model.GameRecord{
			White: "A_v1.0", Black: "B_v1.0", Result: model.Draw, Tournament: "t1",
		})
		engines := buildEngines(games)
		table := rating.NewEstimator().Estimate(engines)
		rating.ApplyPerformanceRatings(engines, table)

		Convey("Then every accumulator should carry its performance rating", func() {
			for _, p := range engines {
				So(p.PerformanceRating, ShouldEqual, rating.PerformanceRating(p, table))
			}
		})
	})
}
