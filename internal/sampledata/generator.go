// Package sampledata generates synthetic club workbooks for demos and load
// checks. Cells use the encodings real sheets carry: clock strings, day
// fractions, comma decimals and "NC"/"-" sentinels.
package sampledata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// Sheet layout.
const (
	CurrentNameColumn = "Deportista"
	HistoryNameColumn = "Nombre"
	TotalsRow         = "Totales"
	secondsPerDay     = 86400
	maxNameAttempts   = 50
)

// Weekly volume ranges per sport, scaled by the athlete's level.
const (
	swimHoursMin, swimHoursMax = 0.75, 3.0
	swimPaceMin, swimPaceMax   = 95.0, 150.0 // seconds per 100m
	bikeHoursMin, bikeHoursMax = 2.0, 8.0
	bikeSpeedMin, bikeSpeedMax = 24.0, 34.0 // km/h
	bikeClimbPerKm             = 9.0
	runHoursMin, runHoursMax   = 1.0, 5.0
	runPaceMin, runPaceMax     = 270.0, 390.0 // seconds per km
	runClimbPerKm              = 6.0
	restWeekOdds               = 8
)

type athlete struct {
	name            string
	swim, bike, run bool
	level           float64
	isNew           bool
}

// week holds one athlete's values for one week keyed by metric key.
// Durations are in seconds.
type week map[string]float64

// Generate builds a current-week workbook and a history workbook. The same
// seed yields the same workbooks.
func Generate(cfg Config) (current, history *workbook.Workbook, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	table := cfg.Table
	if table == nil {
		table = metric.Defaults()
	}
	f := gofakeit.New(cfg.Seed)

	roster := newRoster(f, cfg)
	defs := table.All()
	current = &workbook.Workbook{Sheets: []workbook.Sheet{currentSheet(f, defs, roster, cfg.Weeks+1)}}
	history = &workbook.Workbook{Sheets: historySheets(f, defs, roster, cfg.Weeks)}
	return current, history, nil
}

func newRoster(f *gofakeit.Faker, cfg Config) []athlete {
	seen := make(map[string]struct{}, cfg.Athletes)
	roster := make([]athlete, 0, cfg.Athletes)
	for i := 0; i < cfg.Athletes; i++ {
		name := uniqueName(f, seen, i)
		a := athlete{
			name:  name,
			swim:  f.Float64() < 0.7,
			bike:  f.Float64() < 0.9,
			run:   f.Float64() < 0.9,
			level: f.Float64Range(0.6, 1.0),
			isNew: i >= cfg.Athletes-cfg.NewAthletes,
		}
		if !a.swim && !a.bike && !a.run {
			a.run = true
		}
		roster = append(roster, a)
	}
	return roster
}

func uniqueName(f *gofakeit.Faker, seen map[string]struct{}, i int) string {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := f.FirstName() + " " + f.LastName()
		key := workbook.NameKey(name)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			return name
		}
	}
	name := fmt.Sprintf("%s %d", f.FirstName(), i+1)
	seen[workbook.NameKey(name)] = struct{}{}
	return name
}

func currentSheet(f *gofakeit.Faker, defs []metric.Definition, roster []athlete, weekNo int) workbook.Sheet {
	s := workbook.Sheet{
		Name:   fmt.Sprintf("Semana %d", weekNo),
		Header: []string{CurrentNameColumn},
	}
	for _, d := range defs {
		s.Header = append(s.Header, d.Column)
	}
	for _, a := range roster {
		w := a.train(f, defs)
		row := []quantity.Cell{a.name}
		for _, d := range defs {
			row = append(row, encode(f, d, w[d.Key]))
		}
		s.Rows = append(s.Rows, row)
	}
	totals := []quantity.Cell{TotalsRow}
	for range defs {
		totals = append(totals, quantity.Placeholder)
	}
	s.Rows = append(s.Rows, totals)
	return s
}

// historySheets returns one sheet per history key with a column per week.
func historySheets(f *gofakeit.Faker, defs []metric.Definition, roster []athlete, weeks int) []workbook.Sheet {
	header := []string{HistoryNameColumn}
	for i := 1; i <= weeks; i++ {
		header = append(header, "Sem "+strconv.Itoa(i))
	}

	var sheets []workbook.Sheet
	index := make(map[string]int)
	owner := make(map[string]string)
	for _, d := range defs {
		if _, dup := index[workbook.Fold(d.HistoryKey)]; dup {
			continue
		}
		index[workbook.Fold(d.HistoryKey)] = len(sheets)
		owner[d.Key] = d.HistoryKey
		sheets = append(sheets, workbook.Sheet{Name: d.HistoryKey, Header: header})
	}

	for _, a := range roster {
		if a.isNew {
			continue
		}
		rows := make([][]quantity.Cell, len(sheets))
		for i := range rows {
			rows[i] = []quantity.Cell{a.name}
		}
		for wk := 0; wk < weeks; wk++ {
			w := a.train(f, defs)
			for _, d := range defs {
				if _, ok := owner[d.Key]; !ok {
					continue
				}
				i := index[workbook.Fold(d.HistoryKey)]
				rows[i] = append(rows[i], encode(f, d, w[d.Key]))
			}
		}
		for i := range sheets {
			sheets[i].Rows = append(sheets[i].Rows, rows[i])
		}
	}
	return sheets
}

// train simulates one week. Totals are sums of the sports and paces follow
// from time and distance.
func (a athlete) train(f *gofakeit.Faker, defs []metric.Definition) week {
	w := week{}
	if f.IntRange(1, restWeekOdds) == 1 {
		return w
	}

	if a.swim {
		secs := hours(f, swimHoursMin, swimHoursMax, a.level)
		pace := f.Float64Range(swimPaceMin, swimPaceMax) / a.level
		w[metric.SwimTime] = secs
		w[metric.SwimDistance] = round(secs/pace/10, 1)
		w[metric.SwimPace] = math.Round(pace)
	}
	if a.bike {
		secs := hours(f, bikeHoursMin, bikeHoursMax, a.level)
		speed := f.Float64Range(bikeSpeedMin, bikeSpeedMax) * a.level
		dist := round(speed*secs/3600, 1)
		w[metric.BikeTime] = secs
		w[metric.BikeDistance] = dist
		w[metric.BikeElevation] = math.Round(dist * bikeClimbPerKm * f.Float64Range(0.3, 1.7))
		w[metric.BikeSpeed] = round(speed, 1)
	}
	if a.run {
		secs := hours(f, runHoursMin, runHoursMax, a.level)
		pace := f.Float64Range(runPaceMin, runPaceMax) / a.level
		dist := round(secs/pace, 1)
		w[metric.RunTime] = secs
		w[metric.RunDistance] = dist
		w[metric.RunElevation] = math.Round(dist * runClimbPerKm * f.Float64Range(0.3, 1.7))
		w[metric.RunPace] = math.Round(pace)
	}

	w[metric.TotalTime] = w[metric.SwimTime] + w[metric.BikeTime] + w[metric.RunTime]
	w[metric.TotalDistance] = round(w[metric.SwimDistance]+w[metric.BikeDistance]+w[metric.RunDistance], 1)
	w[metric.TotalElevation] = w[metric.BikeElevation] + w[metric.RunElevation]
	w[metric.Consistency] = round(f.Float64Range(0.2, 1.0), 2)

	// Metrics outside the built-in table get a plausible value of their kind.
	for _, d := range defs {
		if _, ok := w[d.Key]; ok {
			continue
		}
		if d.Kind == quantity.KindDuration {
			w[d.Key] = hours(f, 0.5, 2, a.level)
		} else {
			w[d.Key] = round(f.Float64Range(1, 100), 1)
		}
	}
	return w
}

func hours(f *gofakeit.Faker, lo, hi, level float64) float64 {
	return math.Round(f.Float64Range(lo, hi) * level * 3600)
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// encode renders v the way a hand-kept sheet might hold it.
func encode(f *gofakeit.Faker, d metric.Definition, v float64) quantity.Cell {
	if v <= 0 {
		return f.RandomString([]string{"", "NC", "-", "0"})
	}
	if d.Kind == quantity.KindDuration {
		secs := time.Duration(v) * time.Second
		if !d.Pace && f.IntRange(0, 3) == 0 {
			return v / secondsPerDay
		}
		return quantity.FormatClock(secs)
	}
	switch f.IntRange(0, 2) {
	case 0:
		return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
	case 1:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return v
	}
}
