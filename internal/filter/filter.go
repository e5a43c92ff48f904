package filter

import (
	"time"

	"github.com/nshankar/auweather/internal/dataset"
	"github.com/nshankar/auweather/internal/schema"
)

// Season selects a southern-hemisphere season, or all of them.
type Season string

const (
	SeasonAll    Season = "All"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
)

// seasonMonths is the southern-hemisphere mapping: summer straddles the year
// boundary.
var seasonMonths = map[Season][]time.Month{
	SeasonSummer: {time.December, time.January, time.February},
	SeasonAutumn: {time.March, time.April, time.May},
	SeasonWinter: {time.June, time.July, time.August},
	SeasonSpring: {time.September, time.October, time.November},
}

// Months returns the calendar months making up the season, or nil for All.
func (s Season) Months() []time.Month {
	return seasonMonths[s]
}

// Choice is a ternary rain-flag selection.
type Choice string

const (
	ChoiceAll Choice = "All"
	ChoiceYes Choice = "Yes"
	ChoiceNo  Choice = "No"
)

// Selection is the complete filter state for one interaction. It is rebuilt
// from scratch on every request and never mutated in place; zero values mean
// "no restriction".
type Selection struct {
	Locations    []string
	DateStart    *time.Time // inclusive
	DateEnd      *time.Time // inclusive
	Season       Season
	RainToday    Choice
	RainTomorrow Choice
	TempMin      *float64 // inclusive, applies to max temperature
	TempMax      *float64 // inclusive
}

// Predicate decides whether one observation survives the current filters.
type Predicate func(dataset.Observation) bool

// Build composes the selection into a single predicate: the AND of the
// active clauses. A clause that is "All", empty, or whose column is absent
// from the schema contributes true unconditionally. A null value in a field
// an active clause references fails that clause.
func Build(sel Selection, sc schema.Schema) Predicate {
	var clauses []Predicate

	if len(sel.Locations) > 0 {
		members := make(map[string]struct{}, len(sel.Locations))
		for _, l := range sel.Locations {
			members[l] = struct{}{}
		}
		clauses = append(clauses, func(o dataset.Observation) bool {
			_, ok := members[o.Location]
			return ok
		})
	}

	if sel.DateStart != nil && sel.DateEnd != nil {
		start, end := *sel.DateStart, *sel.DateEnd
		clauses = append(clauses, func(o dataset.Observation) bool {
			return !o.Date.Before(start) && !o.Date.After(end)
		})
	}

	if months := sel.Season.Months(); months != nil {
		set := make(map[time.Month]struct{}, len(months))
		for _, m := range months {
			set[m] = struct{}{}
		}
		clauses = append(clauses, func(o dataset.Observation) bool {
			_, ok := set[o.Date.Month()]
			return ok
		})
	}

	if want := string(sel.RainToday); (sel.RainToday == ChoiceYes || sel.RainToday == ChoiceNo) && sc.Has(schema.FieldRainToday) {
		clauses = append(clauses, func(o dataset.Observation) bool {
			return o.RainToday.Valid && o.RainToday.String == want
		})
	}

	if want := string(sel.RainTomorrow); (sel.RainTomorrow == ChoiceYes || sel.RainTomorrow == ChoiceNo) && sc.Has(schema.FieldRainTomorrow) {
		clauses = append(clauses, func(o dataset.Observation) bool {
			return o.RainTomorrow.Valid && o.RainTomorrow.String == want
		})
	}

	if sel.TempMin != nil && sel.TempMax != nil && sc.Has(schema.FieldMaxTemp) {
		low, high := *sel.TempMin, *sel.TempMax
		clauses = append(clauses, func(o dataset.Observation) bool {
			return o.MaxTemp.Valid && o.MaxTemp.Float64 >= low && o.MaxTemp.Float64 <= high
		})
	}

	return func(o dataset.Observation) bool {
		for _, c := range clauses {
			if !c(o) {
				return false
			}
		}
		return true
	}
}

// Apply returns the observations accepted by the predicate, as a fresh
// slice. The input is never reordered or modified.
func Apply(obs []dataset.Observation, p Predicate) []dataset.Observation {
	out := make([]dataset.Observation, 0, len(obs))
	for _, o := range obs {
		if p(o) {
			out = append(out, o)
		}
	}
	return out
}
