package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Graph Metrics
	GraphBuildsTotal       *prometheus.CounterVec
	GraphBuildDuration     prometheus.Histogram
	GraphNodesTotal        *prometheus.GaugeVec
	GraphEdgesTotal        *prometheus.GaugeVec
	GraphInteractionsTotal *prometheus.GaugeVec

	// Analysis Metrics
	AnalysisRunsTotal      *prometheus.CounterVec
	AnalysisMetricDuration *prometheus.HistogramVec
	AnalysisEigenFallbacks *prometheus.CounterVec
	AnalysisCommunities    *prometheus.GaugeVec
	AnalysisModularity     *prometheus.GaugeVec
	AnalysisWarningsTotal  prometheus.Counter
	AnalysisDensity        *prometheus.GaugeVec
	AnalysisTriadicClosure *prometheus.GaugeVec

	// Export Metrics
	ExportsTotal    *prometheus.CounterVec
	ExportSizeBytes *prometheus.HistogramVec

	// GraphQL Metrics
	GraphQLRequestsTotal   *prometheus.CounterVec
	GraphQLRequestDuration *prometheus.HistogramVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initHTTPMetrics()
	r.initGraphMetrics()
	r.initAnalysisMetrics()
	r.initExportMetrics()
	r.initGraphQLMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
