package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/enginelab/crosstable/internal/domain/model"
	"github.com/enginelab/crosstable/internal/mapping"
)

type sliceSource struct {
	games []model.RawGame
	err   error
}

func (s *sliceSource) Load() ([]model.RawGame, error) { return s.games, s.err }

func corpus() []model.RawGame {
	var games []model.RawGame
	add := func(white, black, result string, n int) {
		for i := 0; i < n; i++ {
			games = append(games, model.RawGame{
				White: white, Black: black, Result: result,
				Tournament: "spring_open", Date: "2025.03.14",
			})
		}
	}
	// Three spellings of the same engine, all beating the random mover.
	add("SlowMate 1.0", "Random_Opponent v1.0", "1-0", 4)
	add("slowmate_v1.0", "Random_Opponent v1.0", "1-0", 3)
	add("SlowMate_v1.0", "Random_Opponent v1.0", "1/2-1/2", 3)
	add("Stockfish 10%", "SlowMate 1.0", "1-0", 5)
	add("Stockfish 10%", "Random_Opponent v1.0", "1-0", 5)
	return games
}

func TestRunPipeline(t *testing.T) {
	Convey("Given a service over an in-memory corpus", t, func() {
		ctx := context.Background()
		src := &sliceSource{games: corpus()}
		svc := New(WithSource(src))

		rep, err := svc.Run(ctx)
		So(err, ShouldBeNil)
		So(rep, ShouldNotBeNil)

		Convey("spelling variants collapse to one identity", func() {
			So(rep.Consolidation.ConsolidatedGroups["SlowMate_v1.0"], ShouldContain, "SlowMate 1.0")
			So(rep.Consolidation.ConsolidatedGroups["SlowMate_v1.0"], ShouldContain, "slowmate_v1.0")
			So(rep.Summary.TotalEngines, ShouldEqual, 3)
		})

		Convey("rankings come back through the store", func() {
			entries, err := svc.Rankings(ctx, 10)
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 3)
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[0].EstimatedRating, ShouldBeGreaterThanOrEqualTo, entries[1].EstimatedRating)
		})

		Convey("engine detail is served by canonical name", func() {
			detail, err := svc.Engine(ctx, "SlowMate_v1.0")
			So(err, ShouldBeNil)
			So(detail.Performance.TotalGames, ShouldEqual, 15)
		})

		Convey("the full report is retrievable", func() {
			got, err := svc.Report(ctx)
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, rep.ID)
		})

		Convey("stats reflect the run", func() {
			stats := svc.GetStats()
			So(stats["hasRun"], ShouldBeTrue)
			So(stats["gamesLoaded"], ShouldEqual, 20)
			So(stats["gamesValid"], ShouldEqual, 20)
			So(stats["gamesSkipped"], ShouldEqual, 0)
		})
	})
}

func TestRunSkipsMalformed(t *testing.T) {
	Convey("Malformed results are counted but never abort the run", t, func() {
		ctx := context.Background()
		games := corpus()
		games = append(games, model.RawGame{
			White: "SlowMate 1.0", Black: "Random_Opponent v1.0", Result: "*",
		})
		svc := New(WithSource(&sliceSource{games: games}))

		_, err := svc.Run(ctx)
		So(err, ShouldBeNil)

		stats := svc.GetStats()
		So(stats["gamesLoaded"], ShouldEqual, 21)
		So(stats["gamesValid"], ShouldEqual, 20)
		So(stats["gamesSkipped"], ShouldEqual, 1)
	})
}

func TestRunWithMappingTables(t *testing.T) {
	Convey("Manual tables steer normalization and seed ratings", t, func() {
		ctx := context.Background()
		tables := mapping.Empty()
		tables.Overrides["weird alias"] = "SlowMate_v1.0"
		tables.RatingOverrides["SlowMate_v1.0"] = 1876.5
		tables.Groups["SlowMate_v1.0"] = []string{"weird alias", "never seen spelling"}

		games := corpus()
		games = append(games, model.RawGame{
			White: "weird alias", Black: "Random_Opponent v1.0", Result: "1-0",
			Tournament: "spring_open",
		})
		svc := New(WithSource(&sliceSource{games: games}), WithMappingTables(tables))

		rep, err := svc.Run(ctx)
		So(err, ShouldBeNil)

		Convey("the alias folds into the canonical identity", func() {
			detail, err := svc.Engine(ctx, "SlowMate_v1.0")
			So(err, ShouldBeNil)
			So(detail.Performance.TotalGames, ShouldEqual, 16)
		})

		Convey("pinned ratings survive untouched", func() {
			for _, e := range rep.UnifiedRankings {
				if e.Name == "SlowMate_v1.0" {
					So(e.EstimatedRating, ShouldEqual, 1876.5)
				}
			}
		})

		Convey("declared variants appear in the audit trail even if unseen", func() {
			So(rep.Consolidation.ConsolidatedGroups["SlowMate_v1.0"], ShouldContain, "never seen spelling")
		})
	})
}

func TestReadBeforeRun(t *testing.T) {
	Convey("Accessors report ErrNotRun before the first run", t, func() {
		ctx := context.Background()
		svc := New(WithSource(&sliceSource{}))

		_, err := svc.Rankings(ctx, 5)
		So(errors.Is(err, ErrNotRun), ShouldBeTrue)
		_, err = svc.Engine(ctx, "SlowMate_v1.0")
		So(errors.Is(err, ErrNotRun), ShouldBeTrue)
		_, err = svc.Consolidation(ctx)
		So(errors.Is(err, ErrNotRun), ShouldBeTrue)
		_, err = svc.Report(ctx)
		So(errors.Is(err, ErrNotRun), ShouldBeTrue)
		So(svc.GetStats()["hasRun"], ShouldBeFalse)
	})
}

func TestSourceFailure(t *testing.T) {
	Convey("A failing source aborts the run", t, func() {
		svc := New(WithSource(&sliceSource{err: errors.New("disk gone")}))
		_, err := svc.Run(context.Background())
		So(err, ShouldNotBeNil)
	})
}
