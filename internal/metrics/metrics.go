package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auweather_dataset_loads_total",
			Help: "Total raw dataset loads by source kind",
		},
		[]string{"source"},
	)

	RowsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auweather_rows_dropped_total",
			Help: "Rows discarded during coercion for an unparseable date or missing location",
		},
	)

	DashboardRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auweather_dashboard_requests_total",
			Help: "Dashboard recomputation requests by outcome",
		},
		[]string{"status"},
	)

	DashboardComputeSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auweather_dashboard_compute_seconds",
			Help:    "Time spent filtering and aggregating per dashboard request",
			Buckets: prometheus.DefBuckets,
		},
	)
)
