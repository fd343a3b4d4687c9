package metrics_test

import (
	"testing"

	"github.com/enginelab/crosstable/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(registry))

		Convey("Then construction should register all metrics without panicking", func() {
			So(m, ShouldNotBeNil)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})

		Convey("When building a second manager on the same registry", func() {
			Convey("Then duplicate registration should panic", func() {
				So(func() {
					metrics.NewManager(metrics.WithRegistry(registry))
				}, ShouldPanic)
			})
		})
	})

	Convey("Given the package-level helpers", t, func() {
		Convey("Then recording against the global manager should not panic", func() {
			So(metrics.RecordGameIngested, ShouldNotPanic)
			So(metrics.RecordGameMalformed, ShouldNotPanic)
			So(metrics.RecordPGNFileParsed, ShouldNotPanic)
			So(metrics.RecordReportBuild, ShouldNotPanic)
			So(func() { metrics.UpdateEnginesTracked(12) }, ShouldNotPanic)
			So(func() { metrics.UpdateTournamentsTracked(3) }, ShouldNotPanic)
			So(func() { metrics.RecordPipelineDuration(0.25) }, ShouldNotPanic)
			So(func() { metrics.RecordHTTPRequest("rankings", "GET", "200") }, ShouldNotPanic)
			So(func() { metrics.RecordHTTPRequestDuration("rankings", "GET", "200", 1.5) }, ShouldNotPanic)
		})
	})

	Convey("Given the custom registry", t, func() {
		Convey("Then it should be exposed for the /metrics endpoint", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
