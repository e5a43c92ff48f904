package views

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/nshankar/auweather/internal/dataset"
)

func null() sql.NullFloat64 { return sql.NullFloat64{} }

func val(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: true}
}

func flag(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func rainObs(location string, rainfall sql.NullFloat64) dataset.Observation {
	return dataset.Observation{
		Date:     time.Date(2016, 5, 1, 0, 0, 0, 0, time.UTC),
		Location: location,
		Rainfall: rainfall,
	}
}

func TestTopKByMean(t *testing.T) {
	rows := []dataset.Observation{
		rainObs("A", val(10)),
		rainObs("A", val(20)),
		rainObs("B", val(5)),
		rainObs("C", null()), // C has no non-null values: no defined mean
	}

	got := TopKByMean(rows, Rainfall, ByLocation, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(got), got)
	}
	if got[0].Key != "A" || got[0].Mean != 15 {
		t.Errorf("first group = %+v, want A(15)", got[0])
	}
	if got[1].Key != "B" || got[1].Mean != 5 {
		t.Errorf("second group = %+v, want B(5)", got[1])
	}
}

func TestTopKByMean_TiesKeepFirstEncounteredOrder(t *testing.T) {
	rows := []dataset.Observation{
		rainObs("X", val(7)),
		rainObs("Y", val(7)),
		rainObs("Z", val(7)),
	}
	got := TopKByMean(rows, Rainfall, ByLocation, 3)
	want := []string{"X", "Y", "Z"}
	for i, w := range want {
		if got[i].Key != w {
			t.Fatalf("tie order = %v, want %v", got, want)
		}
	}
}

func TestTopKByMean_KLargerThanGroups(t *testing.T) {
	rows := []dataset.Observation{rainObs("A", val(1))}
	if got := TopKByMean(rows, Rainfall, ByLocation, 5); len(got) != 1 {
		t.Errorf("expected 1 group, got %d", len(got))
	}
	if got := TopKByMean(nil, Rainfall, ByLocation, 5); len(got) != 0 {
		t.Errorf("expected no groups for empty input, got %d", len(got))
	}
}

func TestMonthlyMean(t *testing.T) {
	rows := []dataset.Observation{
		{Date: time.Date(2016, 11, 3, 0, 0, 0, 0, time.UTC), Location: "A", Rainfall: val(4)},
		{Date: time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC), Location: "A", Rainfall: val(10)},
		{Date: time.Date(2017, 2, 9, 0, 0, 0, 0, time.UTC), Location: "A", Rainfall: val(20)},
		{Date: time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC), Location: "A", Rainfall: null()},
	}

	got := MonthlyMean(rows, Rainfall)
	// June contributes nothing (null), so only Feb and Nov appear, ascending.
	if len(got) != 2 {
		t.Fatalf("expected 2 months, got %+v", got)
	}
	if got[0].Month != 2 || got[0].Mean != 15 {
		t.Errorf("first = %+v, want month 2 mean 15", got[0])
	}
	if got[1].Month != 11 || got[1].Mean != 4 {
		t.Errorf("second = %+v, want month 11 mean 4", got[1])
	}
}

func TestYearlyMean(t *testing.T) {
	rows := []dataset.Observation{
		{Date: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), Location: "A", Rainfall: val(2)},
		{Date: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), Location: "A", Rainfall: val(8)},
		{Date: time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC), Location: "A", Rainfall: val(4)},
	}
	got := YearlyMean(rows, Rainfall)
	if len(got) != 2 || got[0].Year != 2015 || got[0].Mean != 6 || got[1].Year != 2017 || got[1].Mean != 2 {
		t.Errorf("YearlyMean = %+v", got)
	}
}

func TestThresholdCount(t *testing.T) {
	rows := []dataset.Observation{
		rainObs("A", val(150)),
		rainObs("A", val(101)),
		rainObs("A", val(100)), // not strictly greater: excluded
		rainObs("B", val(200)),
		rainObs("C", val(3)),
		rainObs("C", null()),
	}
	got := ThresholdCount(rows, Rainfall, ExtremeRainThreshold, ByLocation, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %+v", got)
	}
	if got[0].Key != "A" || got[0].Count != 2 {
		t.Errorf("first = %+v, want A:2", got[0])
	}
	if got[1].Key != "B" || got[1].Count != 1 {
		t.Errorf("second = %+v, want B:1", got[1])
	}
}

func TestCategoryProbability(t *testing.T) {
	mk := func(hum sql.NullFloat64, outcome string) dataset.Observation {
		return dataset.Observation{
			Date:         time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
			Location:     "A",
			Humidity:     hum,
			RainTomorrow: flag(outcome),
		}
	}
	rows := []dataset.Observation{
		// Four rows in "Low" (<50): two Yes, two No.
		mk(val(10), "Yes"),
		mk(val(20), "Yes"),
		mk(val(30), "No"),
		mk(val(40), "No"),
		// One row in "High" (>80).
		mk(val(95), "Yes"),
		// Excluded before bucketing: null humidity or null outcome.
		mk(null(), "Yes"),
		mk(val(60), ""),
	}

	got := CategoryProbability(rows, Humidity, HumidityBins, RainTomorrow)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", got)
	}
	if got[0].Bucket != "Low" || got[0].Probability != 50.0 || got[0].Count != 4 {
		t.Errorf("Low = %+v, want 50%% of 4", got[0])
	}
	// "Medium" had only a null-outcome row: omitted, never 0%.
	if got[1].Bucket != "High" || got[1].Probability != 100.0 {
		t.Errorf("High = %+v, want 100%%", got[1])
	}
}

func TestBinEdges(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "Low"},
		{50, "Low"}, // right-inclusive edge
		{50.1, "Medium"},
		{80, "Medium"},
		{80.1, "High"},
		{math.MaxFloat64, "High"},
	}
	for _, tt := range tests {
		if got := HumidityBins.bucket(tt.v); got != tt.want {
			t.Errorf("bucket(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestKPIs(t *testing.T) {
	rows := []dataset.Observation{
		{
			Date: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), Location: "A",
			Rainfall: val(10), MaxTemp: val(30), Humidity: val(60), RainToday: flag("Yes"),
		},
		{
			Date: time.Date(2016, 1, 2, 0, 0, 0, 0, time.UTC), Location: "A",
			Rainfall: val(2.5), MaxTemp: val(20), RainToday: flag("No"),
		},
		{
			Date: time.Date(2016, 1, 3, 0, 0, 0, 0, time.UTC), Location: "B",
			Rainfall: null(),
		},
	}

	got := KPIs(rows)
	if got.Rows != 3 {
		t.Errorf("rows = %d, want 3", got.Rows)
	}
	if got.TotalRainfall != 12.5 {
		t.Errorf("total rainfall = %v, want 12.5", got.TotalRainfall)
	}
	if !got.AvgTemp.Valid || got.AvgTemp.Float64 != 25 {
		t.Errorf("avg temp = %+v, want 25", got.AvgTemp)
	}
	if !got.AvgHumidity.Valid || got.AvgHumidity.Float64 != 60 {
		t.Errorf("avg humidity = %+v, want 60", got.AvgHumidity)
	}
	if got.RainyDays != 1 {
		t.Errorf("rainy days = %d, want 1", got.RainyDays)
	}
}

func TestKPIs_Empty(t *testing.T) {
	got := KPIs(nil)
	if got.AvgTemp.Valid || got.AvgHumidity.Valid || got.TotalRainfall != 0 || got.RainyDays != 0 {
		t.Errorf("empty KPIs = %+v", got)
	}
}

func TestScatterRows(t *testing.T) {
	rows := []dataset.Observation{
		{Date: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), Location: "A", MaxTemp: val(25), Rainfall: val(1), Humidity: val(70)},
		{Date: time.Date(2016, 1, 2, 0, 0, 0, 0, time.UTC), Location: "A", MaxTemp: val(30), Rainfall: val(0)},
		{Date: time.Date(2016, 1, 3, 0, 0, 0, 0, time.UTC), Location: "A", MaxTemp: null(), Rainfall: val(5)},
	}
	got := ScatterRows(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %+v", got)
	}
	if got[0].Humidity == nil || *got[0].Humidity != 70 {
		t.Errorf("first point humidity = %v, want 70", got[0].Humidity)
	}
	if got[1].Humidity != nil {
		t.Errorf("second point should have no humidity")
	}
}
