package api

import (
	"github.com/nshankar/auweather/internal/dataset"
	"github.com/nshankar/auweather/internal/filter"
	"github.com/nshankar/auweather/internal/geo"
	"github.com/nshankar/auweather/internal/schema"
	"github.com/nshankar/auweather/internal/views"
)

const (
	topRainiestCount = 5
	extremeDayCount  = 5
	mapCityCount     = 10
)

// KPIView is the JSON shape of the headline numbers. Null averages (field
// missing from the source, or filtered to nothing) are omitted rather than
// reported as zero.
type KPIView struct {
	AvgTempC        *float64 `json:"avg_temp_c,omitempty"`
	AvgHumidityPct  *float64 `json:"avg_humidity_pct,omitempty"`
	TotalRainfallMM float64  `json:"total_rainfall_mm"`
	RainyDays       int      `json:"rainy_days"`
}

// Dashboard bundles every view the presentation layer renders for one
// filter state. A view whose required optional field is unavailable, or
// whose filtered input is empty, is simply absent; the rest stay usable.
type Dashboard struct {
	Rows             int                  `json:"rows"`
	KPIs             *KPIView             `json:"kpis,omitempty"`
	TopRainfall      []views.GroupStat    `json:"top_rainfall,omitempty"`
	MonthlyRainfall  []views.MonthStat    `json:"monthly_rainfall,omitempty"`
	TempVsRainfall   []views.ScatterPoint `json:"temp_vs_rainfall,omitempty"`
	ExtremeRainDays  []views.GroupCount   `json:"extreme_rain_days,omitempty"`
	YearlyRainfall   []views.YearStat     `json:"yearly_rainfall,omitempty"`
	HumidityRainProb []views.BucketProb   `json:"humidity_rain_probability,omitempty"`
	WindRainProb     []views.BucketProb   `json:"wind_rain_probability,omitempty"`
	Map              []geo.MapPoint       `json:"map,omitempty"`
}

// AllSelection is the no-restriction filter state: every location, full
// date range, all seasons and rain flags.
func AllSelection() filter.Selection {
	return filter.Selection{
		Season:       filter.SeasonAll,
		RainToday:    filter.ChoiceAll,
		RainTomorrow: filter.ChoiceAll,
	}
}

// BuildDashboard runs one full recomputation pass: predicate, filtered
// snapshot, then every view in the catalog over that snapshot.
func BuildDashboard(ds *dataset.Dataset, sel filter.Selection) Dashboard {
	pred := filter.Build(sel, ds.Schema)
	filtered := filter.Apply(ds.Observations, pred)

	d := Dashboard{Rows: len(filtered)}
	if len(filtered) == 0 {
		return d
	}

	k := views.KPIs(filtered)
	kpi := &KPIView{TotalRainfallMM: k.TotalRainfall, RainyDays: k.RainyDays}
	if k.AvgTemp.Valid {
		v := k.AvgTemp.Float64
		kpi.AvgTempC = &v
	}
	if k.AvgHumidity.Valid {
		v := k.AvgHumidity.Float64
		kpi.AvgHumidityPct = &v
	}
	d.KPIs = kpi

	d.TopRainfall = views.TopKByMean(filtered, views.Rainfall, views.ByLocation, topRainiestCount)
	d.MonthlyRainfall = views.MonthlyMean(filtered, views.Rainfall)
	d.ExtremeRainDays = views.ThresholdCount(filtered, views.Rainfall, views.ExtremeRainThreshold, views.ByLocation, extremeDayCount)
	d.YearlyRainfall = views.YearlyMean(filtered, views.Rainfall)

	if ds.Schema.Has(schema.FieldMaxTemp) {
		d.TempVsRainfall = views.ScatterRows(filtered)
	}
	if ds.Schema.Has(schema.FieldRainTomorrow) {
		if ds.Schema.Has(schema.FieldHumidity) {
			d.HumidityRainProb = views.CategoryProbability(filtered, views.Humidity, views.HumidityBins, views.RainTomorrow)
		}
		if ds.Schema.Has(schema.FieldWindSpeed) {
			d.WindRainProb = views.CategoryProbability(filtered, views.WindSpeed, views.WindBins, views.RainTomorrow)
		}
	}

	d.Map = geo.MapPoints(views.TopKByMean(filtered, views.Rainfall, views.ByLocation, mapCityCount))
	return d
}
