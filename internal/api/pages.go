package api

import (
	"log"
	"net/http"
)

// IndexData is the server-rendered dashboard shell: the unfiltered view
// tables plus the widget limits the client needs to drive /api/dashboard.
type IndexData struct {
	Dashboard Dashboard
	Limits    Limits
	Dropped   int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := IndexData{
		Dashboard: BuildDashboard(s.ds, AllSelection()),
		Limits:    s.limits,
		Dropped:   s.ds.Dropped,
	}
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("render index: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
