package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/atharv3903/skyroute/internal/model"
)

var (
	// RouteQueries counts route queries by result: found, unknown_airport, no_route.
	RouteQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyroute_route_queries_total",
		Help: "Total route queries by result",
	}, []string{"result"})

	RouteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyroute_route_duration_seconds",
		Help:    "Route query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
	})

	RouteCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyroute_route_cache_lookups_total",
		Help: "Route cache lookups by outcome",
	}, []string{"outcome"})

	GraphLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyroute_graph_loads_total",
		Help: "Dataset loads by status",
	}, []string{"status"})

	graphAirports = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skyroute_graph_airports",
		Help: "Airports in the served graph",
	})

	graphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skyroute_graph_edges",
		Help: "Directed routes in the served graph",
	})

	skippedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skyroute_graph_skipped_rows",
		Help: "Malformed rows dropped by the last load",
	})
)

// ObserveGraph records the shape of a freshly published graph.
func ObserveGraph(st model.GraphStats) {
	graphAirports.Set(float64(st.Airports))
	graphEdges.Set(float64(st.Edges))
	skippedRows.Set(float64(st.Skipped))
}
