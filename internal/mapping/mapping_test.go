package mapping_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/enginelab/crosstable/internal/mapping"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "name_consolidation.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a consolidation file with both group forms", t, func() {
		path := writeFile(t, `{
			"name_consolidation": {
				"consolidations": {
					"SlowMate_v1.0": {
						"variants": ["SlowMate_v1.0_RELEASE", "SlowMate v1.0"],
						"rating_override": 1525.5
					},
					"Copycat_v1.0": ["Copycat_uci", "Copycat v1.0"]
				}
			}
		}`)
		tables, err := mapping.Load(path)

		Convey("Then loading should succeed", func() {
			So(err, ShouldBeNil)
		})

		Convey("Then variants should map, lowercased, to their canonical name", func() {
			So(tables.Overrides["slowmate_v1.0_release"], ShouldEqual, "SlowMate_v1.0")
			So(tables.Overrides["slowmate v1.0"], ShouldEqual, "SlowMate_v1.0")
			So(tables.Overrides["copycat_uci"], ShouldEqual, "Copycat_v1.0")
		})

		Convey("Then space/underscore swapped spellings should map too", func() {
			So(tables.Overrides["slowmate v1.0_release"], ShouldEqual, "SlowMate_v1.0")
			So(tables.Overrides["slowmate_v1.0"], ShouldEqual, "SlowMate_v1.0")
			So(tables.Overrides["copycat_v1.0"], ShouldEqual, "Copycat_v1.0")
		})

		Convey("Then rating overrides should be extracted", func() {
			So(tables.RatingOverrides, ShouldHaveLength, 1)
			So(tables.RatingOverrides["SlowMate_v1.0"], ShouldEqual, 1525.5)
		})

		Convey("Then the group structure should be preserved", func() {
			So(tables.Groups["SlowMate_v1.0"], ShouldHaveLength, 2)
			So(tables.Groups["Copycat_v1.0"], ShouldHaveLength, 2)
		})
	})

	Convey("Given a missing file", t, func() {
		tables, err := mapping.Load(filepath.Join(t.TempDir(), "nope.json"))

		Convey("Then it should fail with the not-found sentinel and empty tables", func() {
			So(err, ShouldNotBeNil)
			So(mapping.IsNotFound(err), ShouldBeTrue)
			So(tables.Overrides, ShouldBeEmpty)
		})
	})

	Convey("Given a structurally invalid group", t, func() {
		path := writeFile(t, `{
			"name_consolidation": {
				"consolidations": {"Bad_v1.0": 42}
			}
		}`)
		_, err := mapping.Load(path)

		Convey("Then loading should fail as a configuration error", func() {
			So(err, ShouldNotBeNil)
			So(mapping.IsNotFound(err), ShouldBeFalse)
		})
	})

	Convey("Given a non-numeric rating override", t, func() {
		path := writeFile(t, `{
			"name_consolidation": {
				"consolidations": {
					"Bad_v1.0": {"variants": ["Bad"], "rating_override": "high"}
				}
			}
		}`)
		_, err := mapping.Load(path)

		Convey("Then loading should fail", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a file without a consolidations section", t, func() {
		path := writeFile(t, `{}`)
		tables, err := mapping.Load(path)

		Convey("Then it should yield empty tables without error", func() {
			So(err, ShouldBeNil)
			So(tables.Overrides, ShouldBeEmpty)
			So(tables.RatingOverrides, ShouldBeEmpty)
		})
	})
}
