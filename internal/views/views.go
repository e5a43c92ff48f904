package views

import (
	"database/sql"
	"sort"

	"github.com/nshankar/auweather/internal/dataset"
)

// NumericField reads one optional numeric field off an observation.
type NumericField func(dataset.Observation) sql.NullFloat64

// FlagField reads one optional Yes/No field off an observation.
type FlagField func(dataset.Observation) sql.NullString

// GroupKey derives the grouping key for an observation.
type GroupKey func(dataset.Observation) string

// Field accessors for the canonical observation. Views take these rather
// than probing column names: the schema question was settled at load time.
var (
	Rainfall  NumericField = func(o dataset.Observation) sql.NullFloat64 { return o.Rainfall }
	MaxTemp   NumericField = func(o dataset.Observation) sql.NullFloat64 { return o.MaxTemp }
	Humidity  NumericField = func(o dataset.Observation) sql.NullFloat64 { return o.Humidity }
	WindSpeed NumericField = func(o dataset.Observation) sql.NullFloat64 { return o.WindSpeed }

	RainToday    FlagField = func(o dataset.Observation) sql.NullString { return o.RainToday }
	RainTomorrow FlagField = func(o dataset.Observation) sql.NullString { return o.RainTomorrow }

	ByLocation GroupKey = func(o dataset.Observation) string { return o.Location }
)

// ExtremeRainThreshold is the fixed cutoff, in mm, for an "extreme rain"
// day.
const ExtremeRainThreshold = 100.0

// GroupStat is one group's mean in a top-K result.
type GroupStat struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
}

// TopKByMean groups observations, takes the arithmetic mean of field per
// group ignoring nulls, and returns the k largest means in descending
// order. Groups with no non-null values have no defined mean and are
// excluded. Ties keep first-encountered group order.
func TopKByMean(obs []dataset.Observation, field NumericField, key GroupKey, k int) []GroupStat {
	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[string]*acc)
	var order []string
	for _, o := range obs {
		v := field(o)
		if !v.Valid {
			continue
		}
		g := key(o)
		a, ok := sums[g]
		if !ok {
			a = &acc{}
			sums[g] = a
			order = append(order, g)
		}
		a.sum += v.Float64
		a.count++
	}

	stats := make([]GroupStat, 0, len(order))
	for _, g := range order {
		a := sums[g]
		stats = append(stats, GroupStat{Key: g, Mean: a.sum / float64(a.count)})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Mean > stats[j].Mean })
	if k >= 0 && len(stats) > k {
		stats = stats[:k]
	}
	return stats
}

// MonthStat is one calendar month's mean.
type MonthStat struct {
	Month int     `json:"month"` // 1..12
	Mean  float64 `json:"mean"`
}

// MonthlyMean groups by calendar month of the observation date and returns
// means in ascending month order. Months with no data are omitted.
func MonthlyMean(obs []dataset.Observation, field NumericField) []MonthStat {
	var sums, counts [13]float64
	for _, o := range obs {
		v := field(o)
		if !v.Valid {
			continue
		}
		m := int(o.Date.Month())
		sums[m] += v.Float64
		counts[m]++
	}
	var out []MonthStat
	for m := 1; m <= 12; m++ {
		if counts[m] > 0 {
			out = append(out, MonthStat{Month: m, Mean: sums[m] / counts[m]})
		}
	}
	return out
}

// YearStat is one calendar year's mean.
type YearStat struct {
	Year int     `json:"year"`
	Mean float64 `json:"mean"`
}

// YearlyMean groups by calendar year and returns means in ascending year
// order.
func YearlyMean(obs []dataset.Observation, field NumericField) []YearStat {
	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[int]*acc)
	for _, o := range obs {
		v := field(o)
		if !v.Valid {
			continue
		}
		y := o.Date.Year()
		a, ok := sums[y]
		if !ok {
			a = &acc{}
			sums[y] = a
		}
		a.sum += v.Float64
		a.count++
	}
	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]YearStat, 0, len(years))
	for _, y := range years {
		a := sums[y]
		out = append(out, YearStat{Year: y, Mean: a.sum / float64(a.count)})
	}
	return out
}

// GroupCount is one group's row count in a threshold-count result.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ThresholdCount counts, per group, the rows whose field strictly exceeds
// the threshold, and returns the k largest counts descending. Ties keep
// first-encountered group order.
func ThresholdCount(obs []dataset.Observation, field NumericField, threshold float64, key GroupKey, k int) []GroupCount {
	counts := make(map[string]int)
	var order []string
	for _, o := range obs {
		v := field(o)
		if !v.Valid || v.Float64 <= threshold {
			continue
		}
		g := key(o)
		if _, ok := counts[g]; !ok {
			order = append(order, g)
		}
		counts[g]++
	}
	out := make([]GroupCount, 0, len(order))
	for _, g := range order {
		out = append(out, GroupCount{Key: g, Count: counts[g]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// ScatterPoint is one row of the temperature-vs-rainfall scatter, with the
// optional humidity colour channel.
type ScatterPoint struct {
	MaxTemp  float64  `json:"max_temp"`
	Rainfall float64  `json:"rainfall"`
	Humidity *float64 `json:"humidity,omitempty"`
}

// ScatterRows returns the rows with both temperature and rainfall present.
// Humidity rides along when available.
func ScatterRows(obs []dataset.Observation) []ScatterPoint {
	var out []ScatterPoint
	for _, o := range obs {
		if !o.MaxTemp.Valid || !o.Rainfall.Valid {
			continue
		}
		p := ScatterPoint{MaxTemp: o.MaxTemp.Float64, Rainfall: o.Rainfall.Float64}
		if o.Humidity.Valid {
			h := o.Humidity.Float64
			p.Humidity = &h
		}
		out = append(out, p)
	}
	return out
}
