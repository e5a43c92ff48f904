package dataset

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nshankar/auweather/internal/schema"
)

var (
	// ErrEmptyTable means the source produced no header or no rows.
	ErrEmptyTable = errors.New("dataset: table is empty")
	// ErrMissingEssential means date, location or rainfall could not be
	// resolved against the source columns. The load fails wholesale.
	ErrMissingEssential = errors.New("dataset: missing essential column")
)

// Observation is one cleaned row of the canonical dataset. Date and Location
// are always valid; everything else is independently optional.
type Observation struct {
	Date         time.Time
	Location     string
	Rainfall     sql.NullFloat64
	MaxTemp      sql.NullFloat64
	Humidity     sql.NullFloat64
	WindSpeed    sql.NullFloat64
	RainToday    sql.NullString
	RainTomorrow sql.NullString
}

// Dataset is the canonical, cleaned dataset plus the schema it was resolved
// with. Built once per load and read-only afterwards; per-interaction
// filtering works over Observations without mutating it.
type Dataset struct {
	Schema       schema.Schema
	Observations []Observation
	Dropped      int // rows discarded for an unparseable date or empty location
}

// Build resolves the schema and coerces the raw table into a canonical
// dataset. An empty table or an unresolved essential column is fatal; any
// other irregularity degrades to null values or dropped rows.
func Build(t *Table) (*Dataset, error) {
	if t.Empty() {
		return nil, ErrEmptyTable
	}
	sc := schema.Resolve(t.Columns, schema.DefaultSpecs)
	if missing := sc.MissingEssentials(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingEssential, strings.Join(names, ", "))
	}

	obs, dropped := Coerce(t, sc)
	return &Dataset{Schema: sc, Observations: obs, Dropped: dropped}, nil
}

// Coerce turns raw rows into Observations. Rows whose date cannot be parsed
// or whose location is empty are dropped (they cannot participate in any
// view); unparseable numeric or flag cells become nulls and the row is kept.
// The input table is not modified.
func Coerce(t *Table, sc schema.Schema) (obs []Observation, dropped int) {
	dateIdx := t.ColumnIndex(sc.Column(schema.FieldDate))
	locIdx := t.ColumnIndex(sc.Column(schema.FieldLocation))
	rainIdx := t.ColumnIndex(sc.Column(schema.FieldRainfall))
	tempIdx := optionalIndex(t, sc, schema.FieldMaxTemp)
	humIdx := optionalIndex(t, sc, schema.FieldHumidity)
	windIdx := optionalIndex(t, sc, schema.FieldWindSpeed)
	todayIdx := optionalIndex(t, sc, schema.FieldRainToday)
	tomorrowIdx := optionalIndex(t, sc, schema.FieldRainTomorrow)

	obs = make([]Observation, 0, len(t.Rows))
	for _, row := range t.Rows {
		date, ok := ParseDate(cell(row, dateIdx))
		loc := strings.TrimSpace(cell(row, locIdx))
		if !ok || loc == "" {
			dropped++
			continue
		}
		obs = append(obs, Observation{
			Date:         date,
			Location:     loc,
			Rainfall:     parseFloat(cell(row, rainIdx)),
			MaxTemp:      parseFloat(cell(row, tempIdx)),
			Humidity:     parseFloat(cell(row, humIdx)),
			WindSpeed:    parseFloat(cell(row, windIdx)),
			RainToday:    parseYesNo(cell(row, todayIdx)),
			RainTomorrow: parseYesNo(cell(row, tomorrowIdx)),
		})
	}
	return obs, dropped
}

func optionalIndex(t *Table, sc schema.Schema, f schema.Field) int {
	if !sc.Has(f) {
		return -1
	}
	return t.ColumnIndex(sc.Column(f))
}

// dateLayouts are tried in order. ISO first (weatherAUS exports), then the
// timestamped and Australian day-first spellings.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// ParseDate parses a raw date cell against the accepted layouts.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseFloat(raw string) sql.NullFloat64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// parseYesNo maps the accepted truthy/falsy spellings onto exactly "Yes" or
// "No". Anything else is null, not an error.
func parseYesNo(raw string) sql.NullString {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return sql.NullString{String: "Yes", Valid: true}
	case "no", "n", "false", "0":
		return sql.NullString{String: "No", Valid: true}
	}
	return sql.NullString{}
}

// Export renders the canonical dataset back into a raw table using canonical
// column names. Coercing the exported table yields the same observations
// with no further drops, which is what makes coercion idempotent.
func (d *Dataset) Export() *Table {
	t := &Table{Columns: []string{
		"date", "location", "rainfall", "max_temp", "humidity", "wind_speed", "rain_today", "rain_tomorrow",
	}}
	for _, o := range d.Observations {
		t.Rows = append(t.Rows, []string{
			o.Date.Format(time.RFC3339),
			o.Location,
			formatFloat(o.Rainfall),
			formatFloat(o.MaxTemp),
			formatFloat(o.Humidity),
			formatFloat(o.WindSpeed),
			formatFlag(o.RainToday),
			formatFlag(o.RainTomorrow),
		})
	}
	return t
}

func formatFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'g', -1, 64)
}

func formatFlag(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
