package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysisRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_analysis_runs_total",
			Help: "Total number of analysis runs",
		},
		[]string{"status"},
	)

	r.AnalysisMetricDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialgraph_analysis_metric_duration_seconds",
			Help:    "Time to compute one metric over one relation graph",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		},
		[]string{"relation", "metric"},
	)

	r.AnalysisEigenFallbacks = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_analysis_eigen_fallbacks_total",
			Help: "Eigenvector computations that fell back to power iteration",
		},
		[]string{"relation", "converged"},
	)

	r.AnalysisCommunities = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_analysis_communities",
			Help: "Number of detected communities per relation graph",
		},
		[]string{"relation"},
	)

	r.AnalysisModularity = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_analysis_modularity",
			Help: "Modularity of the detected partition per relation graph",
		},
		[]string{"relation"},
	)

	r.AnalysisDensity = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_analysis_density",
			Help: "Directed edge density per relation graph",
		},
		[]string{"relation"},
	)

	r.AnalysisTriadicClosure = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_analysis_triadic_closure",
			Help: "Global transitivity per relation graph",
		},
		[]string{"relation"},
	)

	r.AnalysisWarningsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "socialgraph_analysis_warnings_total",
			Help: "Non-fatal warnings recorded by analysis sessions",
		},
	)
}
