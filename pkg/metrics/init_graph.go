package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphBuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_graph_builds_total",
			Help: "Total number of graph store builds",
		},
		[]string{"status"},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "socialgraph_graph_build_duration_seconds",
			Help:    "Graph store build duration in seconds, provider calls included",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
	)

	r.GraphNodesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_graph_nodes_total",
			Help: "Number of nodes per relation graph",
		},
		[]string{"relation"},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_graph_edges_total",
			Help: "Number of collapsed edges per relation graph",
		},
		[]string{"relation"},
	)

	r.GraphInteractionsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_graph_interactions_total",
			Help: "Number of multigraph edges (one per interaction) per relation graph",
		},
		[]string{"relation"},
	)
}
