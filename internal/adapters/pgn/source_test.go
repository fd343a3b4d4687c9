package pgn

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const sampleGame = `[Event "test"]
[White "SlowMate 1.0"]
[Black "Random_Opponent v1.0"]
[Result "1-0"]
[Date "2025.03.14"]
[Termination "checkmate"]
[Opening "King's Pawn"]
[ECO "C20"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0
`

const drawnGame = `[Event "test"]
[White "Cecilia v2.0"]
[Black "Cece 2.0"]
[Result "1/2-1/2"]

1. e4 e5 1/2-1/2
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirectoryLayout(t *testing.T) {
	Convey("Given a results tree with tournament subdirectories", t, func() {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "spring_open", "round1.pgn"), sampleGame)
		writeFile(t, filepath.Join(dir, "spring_open", "round2.pgn"), drawnGame)
		writeFile(t, filepath.Join(dir, "loose.pgn"), sampleGame)

		games, err := NewSource(dir).Load()
		So(err, ShouldBeNil)
		So(len(games), ShouldEqual, 3)

		Convey("subdirectory names label their games", func() {
			labels := map[string]int{}
			for _, g := range games {
				labels[g.Tournament]++
			}
			So(labels["spring_open"], ShouldEqual, 2)
			So(labels[RootTournament], ShouldEqual, 1)
		})

		Convey("header tags survive into the raw tuples", func() {
			var found bool
			for _, g := range games {
				if g.White == "SlowMate 1.0" && g.Tournament == "spring_open" {
					found = true
					So(g.Black, ShouldEqual, "Random_Opponent v1.0")
					So(g.Result, ShouldEqual, "1-0")
					So(g.Date, ShouldEqual, "2025.03.14")
					So(g.Termination, ShouldEqual, "checkmate")
					So(g.ECO, ShouldEqual, "C20")
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}

func TestLoadSkipsNonPGN(t *testing.T) {
	Convey("Non-pgn files are ignored", t, func() {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "open", "games.pgn"), drawnGame)
		writeFile(t, filepath.Join(dir, "open", "notes.txt"), "not a game")

		games, err := NewSource(dir).Load()
		So(err, ShouldBeNil)
		So(len(games), ShouldEqual, 1)
		So(games[0].White, ShouldEqual, "Cecilia v2.0")
	})
}

func TestLoadMissingDirectory(t *testing.T) {
	Convey("A missing results directory is an error", t, func() {
		_, err := NewSource(filepath.Join(t.TempDir(), "absent")).Load()
		So(err, ShouldNotBeNil)
	})
}

func TestTournamentFor(t *testing.T) {
	Convey("Given a source rooted at /results", t, func() {
		s := NewSource("/results")
		So(s.tournamentFor("/results/summer_cup/r1.pgn"), ShouldEqual, "summer_cup")
		So(s.tournamentFor("/results/summer_cup/sub/r1.pgn"), ShouldEqual, "summer_cup")
		So(s.tournamentFor("/results/loose.pgn"), ShouldEqual, RootTournament)
	})
}
