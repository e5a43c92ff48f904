package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nshankar/auweather/internal/filter"
	"github.com/nshankar/auweather/internal/metrics"
	"github.com/nshankar/auweather/internal/schema"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		metrics.DashboardRequestsTotal.WithLabelValues("bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	data := BuildDashboard(s.ds, sel)
	metrics.DashboardComputeSeconds.Observe(time.Since(start).Seconds())
	metrics.DashboardRequestsTotal.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// parseSelection builds a fresh filter selection from the request. Nothing
// carries over between requests; absent parameters mean "no restriction".
func parseSelection(q url.Values) (filter.Selection, error) {
	var sel filter.Selection
	sel.Season = filter.SeasonAll
	sel.RainToday = filter.ChoiceAll
	sel.RainTomorrow = filter.ChoiceAll

	for _, raw := range q["location"] {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				sel.Locations = append(sel.Locations, l)
			}
		}
	}

	if v := q.Get("start"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			return sel, fmt.Errorf("invalid start date %q", v)
		}
		sel.DateStart = &ts
	}
	if v := q.Get("end"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			return sel, fmt.Errorf("invalid end date %q", v)
		}
		sel.DateEnd = &ts
	}

	if v := q.Get("season"); v != "" {
		switch season := filter.Season(v); season {
		case filter.SeasonAll, filter.SeasonSummer, filter.SeasonAutumn, filter.SeasonWinter, filter.SeasonSpring:
			sel.Season = season
		default:
			return sel, fmt.Errorf("invalid season %q", v)
		}
	}

	var err error
	if sel.RainToday, err = parseChoice(q.Get("raintoday")); err != nil {
		return sel, err
	}
	if sel.RainTomorrow, err = parseChoice(q.Get("raintomorrow")); err != nil {
		return sel, err
	}

	if v := q.Get("tmin"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sel, fmt.Errorf("invalid tmin %q", v)
		}
		sel.TempMin = &f
	}
	if v := q.Get("tmax"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sel, fmt.Errorf("invalid tmax %q", v)
		}
		sel.TempMax = &f
	}
	return sel, nil
}

func parseChoice(v string) (filter.Choice, error) {
	switch c := filter.Choice(v); c {
	case "":
		return filter.ChoiceAll, nil
	case filter.ChoiceAll, filter.ChoiceYes, filter.ChoiceNo:
		return c, nil
	}
	return filter.ChoiceAll, fmt.Errorf("invalid rain flag choice %q", v)
}

// Limits describes the bounds the filter widgets should offer, derived once
// from the canonical dataset.
type Limits struct {
	Locations []string `json:"locations"`
	DateMin   string   `json:"date_min"`
	DateMax   string   `json:"date_max"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
}

func (s *Server) computeLimits() Limits {
	var lim Limits

	seen := make(map[string]struct{})
	var dateMin, dateMax time.Time
	var tempMin, tempMax float64
	haveTemp := false

	for i, o := range s.ds.Observations {
		if _, ok := seen[o.Location]; !ok {
			seen[o.Location] = struct{}{}
			lim.Locations = append(lim.Locations, o.Location)
		}
		if i == 0 || o.Date.Before(dateMin) {
			dateMin = o.Date
		}
		if i == 0 || o.Date.After(dateMax) {
			dateMax = o.Date
		}
		if o.MaxTemp.Valid {
			if !haveTemp || o.MaxTemp.Float64 < tempMin {
				tempMin = o.MaxTemp.Float64
			}
			if !haveTemp || o.MaxTemp.Float64 > tempMax {
				tempMax = o.MaxTemp.Float64
			}
			haveTemp = true
		}
	}
	sort.Strings(lim.Locations)

	if len(s.ds.Observations) > 0 {
		lim.DateMin = dateMin.Format("2006-01-02")
		lim.DateMax = dateMax.Format("2006-01-02")
	}
	if haveTemp && s.ds.Schema.Has(schema.FieldMaxTemp) {
		lim.TempMin = &tempMin
		lim.TempMax = &tempMax
	}
	return lim
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.limits)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"rows":    len(s.ds.Observations),
		"dropped": s.ds.Dropped,
	})
}
