package schema

import "strings"

// Field is a canonical semantic attribute of an observation, independent of
// how the source spells its column header.
type Field string

const (
	FieldDate         Field = "date"
	FieldLocation     Field = "location"
	FieldRainfall     Field = "rainfall"
	FieldMaxTemp      Field = "max_temp"
	FieldHumidity     Field = "humidity"
	FieldWindSpeed    Field = "wind_speed"
	FieldRainToday    Field = "rain_today"
	FieldRainTomorrow Field = "rain_tomorrow"
)

// EssentialFields must all resolve for a dataset to be usable.
var EssentialFields = []Field{FieldDate, FieldLocation, FieldRainfall}

// FieldSpec describes how to locate a canonical field among arbitrary column
// headers: Candidates are tried first as exact matches after normalization,
// then Tokens as substring matches.
type FieldSpec struct {
	Candidates []string
	Tokens     []string
}

// DefaultSpecs covers the column spellings seen across the Australian
// rainfall datasets this dashboard is pointed at (weatherAUS exports, BOM
// extracts, hand-edited CSVs).
var DefaultSpecs = map[Field]FieldSpec{
	FieldDate:         {Candidates: []string{"date"}, Tokens: []string{"date"}},
	FieldLocation:     {Candidates: []string{"location", "city", "town"}, Tokens: []string{"location", "city", "town"}},
	FieldRainfall:     {Candidates: []string{"rainfall"}, Tokens: []string{"rain"}},
	FieldMaxTemp:      {Candidates: []string{"maxtemp", "max_temp", "tempmax", "tmax", "temp3pm", "temp"}, Tokens: []string{"maxtemp", "temp3pm", "temp"}},
	FieldHumidity:     {Candidates: []string{"humidity3pm", "humidity_3pm", "humidity"}, Tokens: []string{"humidity"}},
	FieldWindSpeed:    {Candidates: []string{"windspeed3pm", "wind_speed_3pm", "windspeed", "wind_speed", "windgustspeed"}, Tokens: []string{"windspeed", "wind"}},
	FieldRainToday:    {Candidates: []string{"raintoday", "rain_today"}, Tokens: []string{"raintoday"}},
	FieldRainTomorrow: {Candidates: []string{"raintomorrow", "rain_tomorrow"}, Tokens: []string{"raintomorrow"}},
}

// Schema maps canonical fields to the real column names they resolved to.
// Built once per dataset load and treated as immutable afterwards.
type Schema map[Field]string

// Has reports whether the field resolved to a real column.
func (s Schema) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Column returns the resolved column name for a field, or "" if unresolved.
func (s Schema) Column(f Field) string {
	return s[f]
}

// MissingEssentials lists essential fields that did not resolve, in the
// canonical order date, location, rainfall.
func (s Schema) MissingEssentials() []Field {
	var missing []Field
	for _, f := range EssentialFields {
		if !s.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Normalize lowercases a column name and strips everything that is not a
// letter or digit, so "Rain_Fall", "RAINFALL" and "rain fall" all compare
// equal.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PickColumn resolves one field spec against the column list. Candidates are
// checked first (exact match after normalization, in listed priority order),
// then columns are scanned in table order for the first whose normalized name
// contains any token. Returns "" when nothing matches; the caller decides
// whether that is fatal.
func PickColumn(columns []string, spec FieldSpec) string {
	norm := make(map[string]string, len(columns))
	for _, c := range columns {
		n := Normalize(c)
		if _, exists := norm[n]; !exists {
			norm[n] = c
		}
	}

	for _, cand := range spec.Candidates {
		if real, ok := norm[Normalize(cand)]; ok {
			return real
		}
	}

	tokens := make([]string, 0, len(spec.Tokens))
	for _, t := range spec.Tokens {
		tokens = append(tokens, Normalize(t))
	}
	for _, c := range columns {
		n := Normalize(c)
		for _, t := range tokens {
			if t != "" && strings.Contains(n, t) {
				return c
			}
		}
	}
	return ""
}

// Resolve builds the schema for a column list. Fields that fail both the
// exact and substring phases are simply absent from the result.
func Resolve(columns []string, specs map[Field]FieldSpec) Schema {
	s := make(Schema, len(specs))
	for field, spec := range specs {
		if col := PickColumn(columns, spec); col != "" {
			s[field] = col
		}
	}
	return s
}
