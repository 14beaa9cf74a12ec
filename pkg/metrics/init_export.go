package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_exports_total",
			Help: "Total number of node/link exports written",
		},
		[]string{"relation", "sink", "status"},
	)

	r.ExportSizeBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialgraph_export_size_bytes",
			Help:    "Size of written exports in bytes",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000},
		},
		[]string{"sink"},
	)
}

func (r *Registry) initGraphQLMetrics() {
	r.GraphQLRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_graphql_requests_total",
			Help: "Total number of GraphQL requests",
		},
		[]string{"status"},
	)

	r.GraphQLRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialgraph_graphql_request_duration_seconds",
			Help:    "GraphQL request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
}
