package testgames

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerateCorpus(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		dir := t.TempDir()
		g := New(Config{OutputDir: dir, Tournaments: 2, RoundsPerPair: 2, Seed: 42})

		total, err := g.Run()
		So(err, ShouldBeNil)

		Convey("every matchup plays the configured pairs per event", func() {
			// 7 engines round-robin: 21 pairings, 2 games each, 2 events.
			So(total, ShouldEqual, 21*2*2)
		})

		Convey("one subdirectory per tournament", func() {
			entries, err := os.ReadDir(dir)
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 2)
			for _, e := range entries {
				So(e.IsDir(), ShouldBeTrue)
				So(e.Name(), ShouldStartWith, "synthetic_event_")
			}
		})

		Convey("pgn files carry complete headers", func() {
			var content string
			err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
				if err == nil && !d.IsDir() {
					b, rerr := os.ReadFile(path)
					if rerr != nil {
						return rerr
					}
					content += string(b)
				}
				return err
			})
			So(err, ShouldBeNil)
			So(content, ShouldContainSubstring, "[White ")
			So(content, ShouldContainSubstring, "[Black ")
			So(content, ShouldContainSubstring, "[Result ")
			So(content, ShouldContainSubstring, "[Date ")
		})
	})
}

func TestSeedReproducibility(t *testing.T) {
	Convey("Identical seeds yield identical corpora", t, func() {
		read := func(dir string) string {
			var all []string
			_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
				if err == nil && !d.IsDir() {
					b, _ := os.ReadFile(path)
					all = append(all, string(b))
				}
				return nil
			})
			return strings.Join(all, "\n")
		}

		d1, d2 := t.TempDir(), t.TempDir()
		_, err := New(Config{OutputDir: d1, Tournaments: 1, RoundsPerPair: 1, Seed: 7}).Run()
		So(err, ShouldBeNil)
		_, err = New(Config{OutputDir: d2, Tournaments: 1, RoundsPerPair: 1, Seed: 7}).Run()
		So(err, ShouldBeNil)

		So(read(d1), ShouldEqual, read(d2))
	})
}

func TestResultSampling(t *testing.T) {
	Convey("The stronger engine wins more often over many samples", t, func() {
		g := New(Config{OutputDir: t.TempDir(), Seed: 99})
		wins := 0
		const samples = 2000
		for i := 0; i < samples; i++ {
			if g.sampleResult(2500, 800) == "1-0" {
				wins++
			}
		}
		So(wins, ShouldBeGreaterThan, samples*3/4)
	})
}
