package ingest_test

import (
	"errors"
	"testing"

	"github.com/enginelab/crosstable/internal/domain/ingest"
	"github.com/enginelab/crosstable/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rawGame(result string) model.RawGame {
	return model.RawGame{
		White:      "SlowMate_v1.0",
		Black:      "Cece_v2.0",
		Result:     result,
		Tournament: "gauntlet_2025",
		Date:       "2025.08.08",
	}
}

func TestValidate(t *testing.T) {
	Convey("Given a tuple with a canonical result", t, func() {
		rec, err := ingest.Validate(rawGame("1-0"))

		Convey("Then it should produce a record with all fields", func() {
			So(err, ShouldBeNil)
			So(rec.Result, ShouldEqual, model.WhiteWin)
			So(rec.White, ShouldEqual, "SlowMate_v1.0")
			So(rec.Black, ShouldEqual, "Cece_v2.0")
			So(rec.Tournament, ShouldEqual, "gauntlet_2025")
			So(rec.HasDate(), ShouldBeTrue)
		})
	})

	Convey("Given a tuple with an unfinished-game marker", t, func() {
		_, err := ingest.Validate(rawGame("*"))

		Convey("Then it should fail with ErrInvalidResult", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ingest.ErrInvalidResult), ShouldBeTrue)
		})
	})

	Convey("Given a tuple with an unknown PGN date", t, func() {
		raw := rawGame("1/2-1/2")
		raw.Date = "????.??.??"
		rec, err := ingest.Validate(raw)

		Convey("Then the date should be stored as absent, not an error", func() {
			So(err, ShouldBeNil)
			So(rec.HasDate(), ShouldBeFalse)
		})
	})

	Convey("Given a tuple with an empty date", t, func() {
		raw := rawGame("0-1")
		raw.Date = ""
		rec, err := ingest.Validate(raw)

		Convey("Then the date should be absent", func() {
			So(err, ShouldBeNil)
			So(rec.HasDate(), ShouldBeFalse)
		})
	})
}

func TestIngest(t *testing.T) {
	Convey("Given a batch with one malformed tuple in the middle", t, func() {
		raws := []model.RawGame{rawGame("1-0"), rawGame("*"), rawGame("0-1")}
		records, skipped := ingest.Ingest(raws)

		Convey("Then the valid records should survive in input order", func() {
			So(records, ShouldHaveLength, 2)
			So(records[0].Result, ShouldEqual, model.WhiteWin)
			So(records[1].Result, ShouldEqual, model.BlackWin)
		})

		Convey("Then the skipped entry should point at the bad tuple", func() {
			So(skipped, ShouldHaveLength, 1)
			So(skipped[0].Index, ShouldEqual, 1)
			So(errors.Is(skipped[0].Err, ingest.ErrInvalidResult), ShouldBeTrue)
		})
	})

	Convey("Given an empty batch", t, func() {
		records, skipped := ingest.Ingest(nil)

		Convey("Then both outputs should be empty", func() {
			So(records, ShouldBeEmpty)
			So(skipped, ShouldBeEmpty)
		})
	})
}
