package views

import (
	"database/sql"

	"github.com/nshankar/auweather/internal/dataset"
)

// KPISummary holds the four headline numbers for the current filter state.
// Averages are null when no row carries the underlying field.
type KPISummary struct {
	AvgTemp       sql.NullFloat64
	AvgHumidity   sql.NullFloat64
	TotalRainfall float64
	RainyDays     int // rows with rain_today == "Yes"
	Rows          int
}

// KPIs computes the headline summary over the filtered dataset. Values are
// exact; any display rounding is the presentation layer's business.
func KPIs(obs []dataset.Observation) KPISummary {
	var s KPISummary
	s.Rows = len(obs)

	var tempSum, humSum float64
	var tempN, humN int
	for _, o := range obs {
		if o.MaxTemp.Valid {
			tempSum += o.MaxTemp.Float64
			tempN++
		}
		if o.Humidity.Valid {
			humSum += o.Humidity.Float64
			humN++
		}
		if o.Rainfall.Valid {
			s.TotalRainfall += o.Rainfall.Float64
		}
		if o.RainToday.Valid && o.RainToday.String == "Yes" {
			s.RainyDays++
		}
	}
	if tempN > 0 {
		s.AvgTemp = sql.NullFloat64{Float64: tempSum / float64(tempN), Valid: true}
	}
	if humN > 0 {
		s.AvgHumidity = sql.NullFloat64{Float64: humSum / float64(humN), Valid: true}
	}
	return s
}
