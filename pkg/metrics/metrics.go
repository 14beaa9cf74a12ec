package metrics

import (
	"runtime"
	"strconv"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordBuild records a graph store build
func (r *Registry) RecordBuild(status string, duration time.Duration) {
	r.GraphBuildsTotal.WithLabelValues(status).Inc()
	r.GraphBuildDuration.Observe(duration.Seconds())
}

// SetGraphSize records the size of one relation graph
func (r *Registry) SetGraphSize(relation string, nodes, edges, interactions int) {
	r.GraphNodesTotal.WithLabelValues(relation).Set(float64(nodes))
	r.GraphEdgesTotal.WithLabelValues(relation).Set(float64(edges))
	r.GraphInteractionsTotal.WithLabelValues(relation).Set(float64(interactions))
}

// RecordMetric records the computation time of one metric over one relation
func (r *Registry) RecordMetric(relation, metric string, duration time.Duration) {
	r.AnalysisMetricDuration.WithLabelValues(relation, metric).Observe(duration.Seconds())
}

// RecordEigenFallback counts a power-iteration fallback
func (r *Registry) RecordEigenFallback(relation string, converged bool) {
	r.AnalysisEigenFallbacks.WithLabelValues(relation, strconv.FormatBool(converged)).Inc()
}

// SetStructure records graph-level structure measures
func (r *Registry) SetStructure(relation string, density, triadicClosure float64) {
	r.AnalysisDensity.WithLabelValues(relation).Set(density)
	r.AnalysisTriadicClosure.WithLabelValues(relation).Set(triadicClosure)
}

// SetCommunities records the community partition of a relation
func (r *Registry) SetCommunities(relation string, count int, modularity float64) {
	r.AnalysisCommunities.WithLabelValues(relation).Set(float64(count))
	r.AnalysisModularity.WithLabelValues(relation).Set(modularity)
}

// RecordRun records a completed analysis run
func (r *Registry) RecordRun(status string) {
	r.AnalysisRunsTotal.WithLabelValues(status).Inc()
}

// RecordWarning counts a non-fatal analysis warning
func (r *Registry) RecordWarning() {
	r.AnalysisWarningsTotal.Inc()
}

// RecordExport records a written export
func (r *Registry) RecordExport(relation, sink, status string, size int) {
	r.ExportsTotal.WithLabelValues(relation, sink, status).Inc()
	if status == "success" {
		r.ExportSizeBytes.WithLabelValues(sink).Observe(float64(size))
	}
}

// RecordGraphQL records a GraphQL request
func (r *Registry) RecordGraphQL(status string, duration time.Duration) {
	r.GraphQLRequestsTotal.WithLabelValues(status).Inc()
	r.GraphQLRequestDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges
func (r *Registry) UpdateSystemMetrics(start time.Time) {
	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
