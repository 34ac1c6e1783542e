package metric_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given the default metric table", t, func() {
		table := metric.Defaults()

		Convey("Then it should hold fifteen metrics", func() {
			So(table.Len(), ShouldEqual, 15)
		})

		Convey("Then only paces should be inverted", func() {
			for _, d := range table.All() {
				So(d.Inverted, ShouldEqual, d.Pace)
				if d.Pace {
					So(d.Kind, ShouldEqual, quantity.KindDuration)
				}
			}
		})

		Convey("Then the sections should split the table", func() {
			total := 0
			for _, d := range metric.Disciplines {
				total += len(table.ByDiscipline(d))
			}
			So(total, ShouldEqual, table.Len())
			So(len(table.ByDiscipline(metric.DisciplineSwim)), ShouldEqual, 3)
			So(len(table.ByDiscipline(metric.DisciplineBike)), ShouldEqual, 4)
			So(len(table.ByDiscipline(metric.DisciplineRun)), ShouldEqual, 4)
		})

		Convey("When looking up a known key", func() {
			d, ok := table.Lookup(metric.RunPace)

			Convey("Then the definition should be returned", func() {
				So(ok, ShouldBeTrue)
				So(d.Column, ShouldEqual, "Trote: Ritmo (min/km)")
				So(d.Sport, ShouldEqual, quantity.SportRun)
			})
		})

		Convey("When looking up an unknown key", func() {
			_, ok := table.Lookup("nap_time")

			Convey("Then nothing should be found", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestNewTable(t *testing.T) {
	Convey("Given two definitions sharing a key", t, func() {
		_, err := metric.NewTable(metric.Definition{Key: "a"}, metric.Definition{Key: "a"})

		Convey("Then the table should be rejected", func() {
			So(errors.Is(err, metric.ErrDuplicateMetric), ShouldBeTrue)
		})
	})
}

func TestWithOverrides(t *testing.T) {
	Convey("Given the default metric table", t, func() {
		table := metric.Defaults()

		Convey("When overriding a column name", func() {
			out, err := table.WithOverrides(map[string]metric.Override{
				metric.BikeSpeed: {Column: "Bici: Velocidad"},
			})

			Convey("Then only that field should change", func() {
				So(err, ShouldBeNil)
				d, _ := out.Lookup(metric.BikeSpeed)
				So(d.Column, ShouldEqual, "Bici: Velocidad")
				So(d.HistoryKey, ShouldEqual, "Ciclismo Velocidad")
				So(d.Label, ShouldEqual, "Vel. Media")
			})

			Convey("Then the original table should be untouched", func() {
				d, _ := table.Lookup(metric.BikeSpeed)
				So(d.Column, ShouldEqual, "Ciclismo: Vel. Media (km/h)")
			})
		})

		Convey("When overriding an unknown metric", func() {
			_, err := table.WithOverrides(map[string]metric.Override{"yoga": {Label: "Yoga"}})

			Convey("Then ErrUnknownMetric should be returned", func() {
				So(errors.Is(err, metric.ErrUnknownMetric), ShouldBeTrue)
			})
		})
	})
}

func TestDefinitionFormat(t *testing.T) {
	Convey("Given metric definitions", t, func() {
		table := metric.Defaults()
		swimPace, _ := table.Lookup(metric.SwimPace)
		runTime, _ := table.Lookup(metric.RunTime)
		dist, _ := table.Lookup(metric.TotalDistance)
		cv, _ := table.Lookup(metric.Consistency)

		So(swimPace.Format(quantity.Duration(2*time.Minute+5*time.Second)), ShouldEqual, "2:05 /100m")
		So(runTime.Format(quantity.Duration(75*time.Minute)), ShouldEqual, "1h 15m")
		So(dist.Format(quantity.Scalar(42.195)), ShouldEqual, "42.2 km")
		So(dist.Format(quantity.Scalar(0)), ShouldEqual, "-")
		So(cv.Format(quantity.Scalar(0.84)), ShouldEqual, "0.8")
		So(dist.Parse("12,5"), ShouldResemble, quantity.Scalar(12.5))
	})
}
