package metric

import (
	"fmt"
	"sort"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
)

// Metric keys of the default table.
const (
	TotalTime      = "total_time"
	TotalDistance  = "total_distance"
	TotalElevation = "total_elevation"
	Consistency    = "consistency"
	SwimTime       = "swim_time"
	SwimDistance   = "swim_distance"
	SwimPace       = "swim_pace"
	BikeTime       = "bike_time"
	BikeDistance   = "bike_distance"
	BikeElevation  = "bike_elevation"
	BikeSpeed      = "bike_speed"
	RunTime        = "run_time"
	RunDistance    = "run_distance"
	RunElevation   = "run_elevation"
	RunPace        = "run_pace"
)

// Table is an ordered, read-only set of metric definitions.
type Table struct {
	defs  []Definition
	index map[string]int
}

// NewTable builds a table from defs, keeping their order.
func NewTable(defs ...Definition) (*Table, error) {
	t := &Table{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if _, dup := t.index[d.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMetric, d.Key)
		}
		t.index[d.Key] = len(t.defs)
		t.defs = append(t.defs, d)
	}
	return t, nil
}

// Defaults returns the club's fifteen-metric table.
func Defaults() *Table {
	dur, num := quantity.KindDuration, quantity.KindScalar
	t, _ := NewTable(
		Definition{Key: TotalTime, Column: "Tiempo Total (hh:mm:ss)", HistoryKey: "Total", Kind: dur, Label: "Tiempo Total", Discipline: DisciplineSummary},
		Definition{Key: TotalDistance, Column: "Distancia Total (km)", HistoryKey: "Distancia Total", Kind: num, Label: "Distancia Total", Unit: "km", Discipline: DisciplineSummary},
		Definition{Key: TotalElevation, Column: "Altimetría Total (m)", HistoryKey: "Altimetría", Kind: num, Label: "Desnivel Total", Unit: "m", Discipline: DisciplineSummary},
		Definition{Key: Consistency, Column: "CV (Equilibrio)", HistoryKey: "CV", Kind: num, Label: "Consistencia", Discipline: DisciplineSummary},

		Definition{Key: SwimTime, Column: "Nat: Tiempo (hh:mm:ss)", HistoryKey: "Natación", Kind: dur, Label: "Tiempo", Sport: quantity.SportSwim, Discipline: DisciplineSwim},
		Definition{Key: SwimDistance, Column: "Nat: Distancia (km)", HistoryKey: "Nat Distancia", Kind: num, Label: "Distancia", Unit: "km", Sport: quantity.SportSwim, Discipline: DisciplineSwim},
		Definition{Key: SwimPace, Column: "Nat: Ritmo (min/100m)", HistoryKey: "Nat Ritmo", Kind: dur, Label: "Ritmo", Unit: "/100m", Inverted: true, Pace: true, Sport: quantity.SportSwim, Discipline: DisciplineSwim},

		Definition{Key: BikeTime, Column: "Ciclismo: Tiempo (hh:mm:ss)", HistoryKey: "Ciclismo", Kind: dur, Label: "Tiempo", Sport: quantity.SportBike, Discipline: DisciplineBike},
		Definition{Key: BikeDistance, Column: "Ciclismo: Distancia (km)", HistoryKey: "Ciclismo Distancia", Kind: num, Label: "Distancia", Unit: "km", Sport: quantity.SportBike, Discipline: DisciplineBike},
		Definition{Key: BikeElevation, Column: "Ciclismo: KOM/Desnivel (m)", HistoryKey: "Ciclismo Desnivel", Kind: num, Label: "Desnivel", Unit: "m", Sport: quantity.SportBike, Discipline: DisciplineBike},
		Definition{Key: BikeSpeed, Column: "Ciclismo: Vel. Media (km/h)", HistoryKey: "Ciclismo Velocidad", Kind: num, Label: "Vel. Media", Unit: "km/h", Sport: quantity.SportBike, Discipline: DisciplineBike},

		Definition{Key: RunTime, Column: "Trote: Tiempo (hh:mm:ss)", HistoryKey: "Trote", Kind: dur, Label: "Tiempo", Sport: quantity.SportRun, Discipline: DisciplineRun},
		Definition{Key: RunDistance, Column: "Trote: Distancia (km)", HistoryKey: "Trote Distancia", Kind: num, Label: "Distancia", Unit: "km", Sport: quantity.SportRun, Discipline: DisciplineRun},
		Definition{Key: RunElevation, Column: "Trote: KOM/Desnivel (m)", HistoryKey: "Trote Desnivel", Kind: num, Label: "Desnivel", Unit: "m", Sport: quantity.SportRun, Discipline: DisciplineRun},
		Definition{Key: RunPace, Column: "Trote: Ritmo (min/km)", HistoryKey: "Trote Ritmo", Kind: dur, Label: "Ritmo", Unit: "/km", Inverted: true, Pace: true, Sport: quantity.SportRun, Discipline: DisciplineRun},
	)
	return t
}

// All returns a copy of the definitions in table order.
func (t *Table) All() []Definition {
	out := make([]Definition, len(t.defs))
	copy(out, t.defs)
	return out
}

// Len returns the number of definitions.
func (t *Table) Len() int { return len(t.defs) }

// Lookup returns the definition for key.
func (t *Table) Lookup(key string) (Definition, bool) {
	i, ok := t.index[key]
	if !ok {
		return Definition{}, false
	}
	return t.defs[i], true
}

// ByDiscipline returns the definitions of one report section in table order.
func (t *Table) ByDiscipline(d Discipline) []Definition {
	var out []Definition
	for _, def := range t.defs {
		if def.Discipline == d {
			out = append(out, def)
		}
	}
	return out
}

// WithOverrides returns a new table with the given overrides applied.
// The receiver is left untouched.
func (t *Table) WithOverrides(overrides map[string]Override) (*Table, error) {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := t.index[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, k)
		}
	}

	defs := t.All()
	for i, d := range defs {
		if o, ok := overrides[d.Key]; ok {
			defs[i] = d.with(o)
		}
	}
	return NewTable(defs...)
}
