package api

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nshankar/auweather/internal/dataset"
)

// Server serves the dashboard over the canonical dataset. The dataset is
// built once at startup and read-only from then on, so handlers share it
// without locking; every request recomputes its views from a fresh filter
// selection.
type Server struct {
	ds     *dataset.Dataset
	port   string
	tmpl   *template.Template
	limits Limits
}

func NewServer(ds *dataset.Dataset, port string) *Server {
	s := &Server{ds: ds, port: port, tmpl: newTemplates()}
	s.limits = s.computeLimits()
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/limits", s.handleLimits)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
