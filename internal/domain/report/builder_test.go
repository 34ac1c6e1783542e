package report_test

import (
	"testing"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/comparison"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/report"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
	. "github.com/smartystreets/goconvey/convey"
)

func currentWeek() *workbook.Workbook {
	return &workbook.Workbook{Sheets: []workbook.Sheet{{
		Name:   "Semana 12",
		Header: []string{"Deportista", "Tiempo Total (hh:mm:ss)", "Distancia Total (km)", "Trote: Ritmo (min/km)", "Nat: Tiempo (hh:mm:ss)"},
		Rows: [][]any{
			{"Ana", "1:00:00", "10,0", "5:00", "NC"},
			{"Bruno", "2:00:00", "20", "5:30", "0"},
			{"Carla", "150", "0", "-", ""},
			{"Totales", "3:00:00", "30", nil, nil},
		},
	}}}
}

func historyBook() *workbook.Workbook {
	return &workbook.Workbook{Sheets: []workbook.Sheet{
		{
			Name:   "Total",
			Header: []string{"Nombre", "Sem 1", "Sem 2", "Promedio"},
			Rows: [][]any{
				{"ana", "1:00:00", "2:00:00", "1:30:00"},
				{"Bruno", "0", "NC", nil},
				{"Promedio", "5:00:00", "5:00:00", nil},
			},
		},
		{
			Name:   "Trote Ritmo",
			Header: []string{"Nombre", "Sem 1"},
			Rows:   [][]any{{"Ana", "5:30"}},
		},
		{
			Name:   "Distancia Total",
			Header: []string{"Nombre", "Sem 1"},
			Rows:   [][]any{{"Ana", 10}},
		},
	}}
}

func teamLine(rep report.Report, key string) report.TeamLine {
	for _, l := range rep.Team {
		if l.Metric == key {
			return l
		}
	}
	return report.TeamLine{}
}

func section(a report.Athlete, d metric.Discipline) report.Section {
	for _, s := range a.Sections {
		if s.Discipline == d {
			return s
		}
	}
	return report.Section{}
}

func TestBuildTeam(t *testing.T) {
	Convey("Given a current week and its history", t, func() {
		rep := report.NewBuilder().Build(currentWeek(), historyBook())

		Convey("Then every metric should have a team line", func() {
			So(len(rep.Team), ShouldEqual, metric.Defaults().Len())
		})

		Convey("Then team averages should skip zeros and totals rows", func() {
			total := teamLine(rep, metric.TotalTime)
			So(total.HasColumn, ShouldBeTrue)
			So(total.Current.AsDuration(), ShouldEqual, 90*time.Minute)
			So(total.CurrentText, ShouldEqual, "1h 30m")
			So(teamLine(rep, metric.TotalDistance).Current.Value, ShouldEqual, 15.0)
			So(teamLine(rep, metric.RunPace).CurrentText, ShouldEqual, "5:15 /km")
		})

		Convey("Then historical team averages should cover all week columns", func() {
			total := teamLine(rep, metric.TotalTime)
			So(total.HasHistory, ShouldBeTrue)
			So(total.Historical.AsDuration(), ShouldEqual, 90*time.Minute)
		})

		Convey("Then a column with no values should be undefined", func() {
			swim := teamLine(rep, metric.SwimTime)
			So(swim.HasColumn, ShouldBeTrue)
			So(swim.Current.Positive(), ShouldBeFalse)
			So(swim.CurrentText, ShouldEqual, "-")
		})

		Convey("Then gaps should be listed in the diagnostics", func() {
			So(rep.Diagnostics.MissingColumns, ShouldContain, metric.Consistency)
			So(rep.Diagnostics.MissingColumns, ShouldNotContain, metric.TotalTime)
			So(rep.Diagnostics.MissingSheets, ShouldContain, metric.BikeSpeed)
			So(rep.Diagnostics.MissingSheets, ShouldNotContain, metric.RunPace)
			So(rep.Diagnostics.Rejected, ShouldEqual, 1)
			So(rep.Diagnostics.Values, ShouldBeGreaterThan, 0)
		})
	})
}

func TestBuildAthletes(t *testing.T) {
	Convey("Given a current week and its history", t, func() {
		rep := report.NewBuilder().Build(currentWeek(), historyBook())

		Convey("Then totals rows should not be athletes", func() {
			So(len(rep.Athletes), ShouldEqual, 3)
			_, ok := rep.FindAthlete("totales")
			So(ok, ShouldBeFalse)
		})

		Convey("When reading Ana's card", func() {
			ana, ok := rep.FindAthlete("ANA")
			So(ok, ShouldBeTrue)

			Convey("Then total time should trail the team and her history", func() {
				l, _ := ana.Line(metric.TotalTime)
				So(l.Text, ShouldEqual, "1h 00m")
				So(l.VsTeam.Outcome, ShouldEqual, comparison.OutcomeBad)
				So(l.VsTeam.Text, ShouldEqual, "-30m 00s")
				So(l.VsHistory.Outcome, ShouldEqual, comparison.OutcomeBad)
			})

			Convey("Then a faster pace should be good on both baselines", func() {
				l, _ := ana.Line(metric.RunPace)
				So(l.Text, ShouldEqual, "5:00 /km")
				So(l.VsTeam.Outcome, ShouldEqual, comparison.OutcomeGood)
				So(l.VsTeam.Text, ShouldEqual, "-0m 15s")
				So(l.VsHistory.Outcome, ShouldEqual, comparison.OutcomeGood)
				So(l.VsHistory.Text, ShouldEqual, "-0m 30s")
			})

			Convey("Then matching her history should be a negligible good", func() {
				l, _ := ana.Line(metric.TotalDistance)
				So(l.Text, ShouldEqual, "10.0 km")
				So(l.VsHistory.Outcome, ShouldEqual, comparison.OutcomeGood)
				So(l.VsHistory.Text, ShouldEqual, "-")
				So(l.VsHistory.Tone, ShouldEqual, comparison.ToneGrey)
			})

			Convey("Then an undefined team average should be neutral", func() {
				l, _ := ana.Line(metric.SwimTime)
				So(l.VsTeam.Outcome, ShouldEqual, comparison.OutcomeNeutral)
				So(l.Active, ShouldBeFalse)
			})

			Convey("Then sections should flag activity", func() {
				So(section(ana, metric.DisciplineRun).Active, ShouldBeTrue)
				So(section(ana, metric.DisciplineSwim).Active, ShouldBeFalse)
				So(section(ana, metric.DisciplineBike).Active, ShouldBeFalse)
				So(len(section(ana, metric.DisciplineRun).ActiveLines()), ShouldEqual, 1)
				So(section(ana, metric.DisciplineSwim).Title, ShouldEqual, "NATACIÓN")
			})
		})

		Convey("When reading Bruno's card", func() {
			bruno, _ := rep.FindAthlete("Bruno")

			Convey("Then an all-zero history should read as new", func() {
				l, _ := bruno.Line(metric.TotalTime)
				So(l.VsTeam.Outcome, ShouldEqual, comparison.OutcomeGood)
				So(l.VsTeam.Text, ShouldEqual, "+30m 00s")
				So(l.VsHistory.Outcome, ShouldEqual, comparison.OutcomeNew)
				So(l.VsHistory.Text, ShouldEqual, comparison.TextNew)
			})
		})

		Convey("When reading Carla's card", func() {
			carla, _ := rep.FindAthlete("Carla")

			Convey("Then a corrupt cell should read as absent", func() {
				l, _ := carla.Line(metric.TotalTime)
				So(l.Text, ShouldEqual, "-")
				So(l.Active, ShouldBeFalse)
			})

			Convey("Then no section should be active", func() {
				for _, s := range carla.Sections {
					So(s.Active, ShouldBeFalse)
				}
			})
		})
	})
}

func TestBuildDegraded(t *testing.T) {
	Convey("Given no workbooks at all", t, func() {
		rep := report.NewBuilder().Build(nil, nil)

		Convey("Then the report should be empty but complete", func() {
			So(len(rep.Team), ShouldEqual, metric.Defaults().Len())
			So(rep.Athletes, ShouldBeEmpty)
			So(len(rep.Diagnostics.MissingSheets), ShouldEqual, metric.Defaults().Len())
			for _, l := range rep.Team {
				So(l.HasColumn, ShouldBeFalse)
				So(l.CurrentText, ShouldEqual, "-")
			}
		})
	})

	Convey("Given a current week without a name column", t, func() {
		wb := &workbook.Workbook{Sheets: []workbook.Sheet{{
			Name:   "Semana",
			Header: []string{"Quien", "Distancia Total (km)"},
			Rows:   [][]any{{"Ana", 4}, {"Bruno", 8}},
		}}}
		rep := report.NewBuilder().Build(wb, nil)

		Convey("Then team averages should still use every row", func() {
			So(rep.Diagnostics.NameColumnMissing, ShouldBeTrue)
			So(rep.Athletes, ShouldBeEmpty)
			So(teamLine(rep, metric.TotalDistance).Current.Value, ShouldEqual, 6.0)
		})
	})

	Convey("Given a renamed column", t, func() {
		table, err := metric.Defaults().WithOverrides(map[string]metric.Override{
			metric.TotalDistance: {Column: "Km"},
		})
		So(err, ShouldBeNil)
		wb := &workbook.Workbook{Sheets: []workbook.Sheet{{
			Name:   "Semana",
			Header: []string{"Nombre", "KM"},
			Rows:   [][]any{{"Ana", "4,5"}},
		}}}
		rep := report.NewBuilder(report.WithTable(table)).Build(wb, nil)

		Convey("Then the override should be used to find it", func() {
			ana, ok := rep.FindAthlete("Ana")
			So(ok, ShouldBeTrue)
			l, _ := ana.Line(metric.TotalDistance)
			So(l.Text, ShouldEqual, "4.5 km")
			So(l.VsHistory.Outcome, ShouldEqual, comparison.OutcomeNew)
		})
	})
}

func TestBuildDuplicates(t *testing.T) {
	Convey("Given an athlete listed twice", t, func() {
		wb := &workbook.Workbook{Sheets: []workbook.Sheet{{
			Name:   "Semana",
			Header: []string{"Nombre", "Distancia Total (km)"},
			Rows:   [][]any{{"Ana", 4}, {"ANA ", 8}},
		}}}
		rep := report.NewBuilder().Build(wb, nil)

		Convey("Then only the first row should be reported", func() {
			So(len(rep.Athletes), ShouldEqual, 1)
			l, _ := rep.Athletes[0].Line(metric.TotalDistance)
			So(l.Value.Value, ShouldEqual, 4.0)
			So(rep.Diagnostics.DuplicateAthletes, ShouldResemble, []string{"ANA"})
		})
	})
}
