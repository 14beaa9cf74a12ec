package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-social/pkg/algorithms"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/logging"
)

// Options configures the metric engine and the community detector
type Options struct {
	Betweenness algorithms.BetweennessOptions
	Eigenvector algorithms.EigenvectorOptions
	Louvain     algorithms.LouvainOptions
	// Parallel computes the five relations concurrently
	Parallel bool
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Betweenness: algorithms.DefaultBetweennessOptions(),
		Eigenvector: algorithms.DefaultEigenvectorOptions(),
		Louvain:     algorithms.DefaultLouvainOptions(),
		Parallel:    true,
	}
}

// GraphMetrics holds the metrics computed for one relation. The per-node maps are
// empty for a graph without edges even though its nodes carry 0.0 attributes.
type GraphMetrics struct {
	Relation graph.Relation

	Centrality  map[int64]float64
	Betweenness map[int64]float64
	Eigenvector map[int64]float64

	Density        float64
	TriadicClosure float64

	BetweennessSampled bool
	BetweennessSources int
	EigenMethod        algorithms.EigenMethod
	EigenConverged     bool
}

// Scores returns the per-node map for a metric
func (m *GraphMetrics) Scores(metric Metric) map[int64]float64 {
	switch metric {
	case Centrality:
		return m.Centrality
	case Betweenness:
		return m.Betweenness
	case Eigenvector:
		return m.Eigenvector
	default:
		return nil
	}
}

// MetricEngine computes node and graph metrics on collapsed graphs and writes the
// node metrics back as attributes.
type MetricEngine struct {
	opts    Options
	session *Session
}

// NewMetricEngine creates an engine bound to a session
func NewMetricEngine(session *Session, opts Options) *MetricEngine {
	return &MetricEngine{opts: opts, session: session}
}

// Compute runs every metric over g. It writes only to g's nodes, so calls for
// different relations may run concurrently.
func (e *MetricEngine) Compute(rel graph.Relation, g *graph.Digraph) *GraphMetrics {
	logger := e.session.Logger().With(logging.Component("metric_engine"), logging.Relation(rel.String()))
	result := &GraphMetrics{
		Relation:    rel,
		Centrality:  make(map[int64]float64),
		Betweenness: make(map[int64]float64),
		Eigenvector: make(map[int64]float64),
		EigenMethod: algorithms.EigenNone,
	}

	if g.Empty() {
		for _, n := range g.Nodes() {
			n.Centrality, n.Betweenness, n.Eigenvector = 0, 0, 0
			n.HasMetrics = true
		}
		result.EigenConverged = true
		logger.Debug("graph has no edges, metrics set to zero", logging.Count(g.NodeCount()))
		return result
	}

	timer := logging.StartTimer(logger, "metrics computed",
		logging.Int("nodes", g.NodeCount()), logging.Int("edges", g.EdgeCount()))

	e.timed(rel, Centrality, func() {
		result.Centrality = algorithms.DegreeCentrality(g)
	})

	e.timed(rel, Betweenness, func() {
		b := algorithms.BetweennessCentrality(g, e.opts.Betweenness)
		result.Betweenness = b.Scores
		result.BetweennessSampled = b.Sampled
		result.BetweennessSources = b.Sources
		if b.Sampled {
			logger.Debug("betweenness approximated from sampled sources", logging.Int("sources", b.Sources))
		}
	})

	e.timed(rel, Eigenvector, func() {
		ev := algorithms.EigenvectorCentrality(g, e.opts.Eigenvector)
		result.Eigenvector = ev.Scores
		result.EigenMethod = ev.Method
		result.EigenConverged = ev.Converged
		if ev.Method != algorithms.EigenPower {
			return
		}
		logger.Debug("eigenvector solver rejected input, using power iteration",
			logging.String("reason", ev.Reason))
		if reg := e.session.Metrics(); reg != nil {
			reg.RecordEigenFallback(rel.String(), ev.Converged)
		}
		switch {
		case ev.Converged:
		case ev.Acyclic:
			logger.Debug("power iteration on acyclic graph stopped at the iteration budget",
				logging.Int("iterations", ev.Iterations))
		default:
			e.session.Warn("EigenvectorCentrality", rel,
				"power iteration did not converge after %d iterations", ev.Iterations)
		}
	})

	result.Density = algorithms.Density(g)
	result.TriadicClosure = algorithms.Transitivity(g)

	for _, n := range g.Nodes() {
		id := n.ID()
		n.Centrality = result.Centrality[id]
		n.Betweenness = result.Betweenness[id]
		n.Eigenvector = result.Eigenvector[id]
		n.HasMetrics = true
	}

	if reg := e.session.Metrics(); reg != nil {
		reg.SetStructure(rel.String(), result.Density, result.TriadicClosure)
	}
	timer.End()
	return result
}

func (e *MetricEngine) timed(rel graph.Relation, metric Metric, fn func()) {
	start := time.Now()
	fn()
	if reg := e.session.Metrics(); reg != nil {
		reg.RecordMetric(rel.String(), metric.String(), time.Since(start))
	}
}

// ComputeAll runs Compute for every relation of the store. With Parallel set each
// relation gets its own goroutine; ComputeAll returns only after all of them finished.
func (e *MetricEngine) ComputeAll(ctx context.Context, store *graph.Store) (map[graph.Relation]*GraphMetrics, error) {
	results := make([]*GraphMetrics, len(graph.Relations))

	compute := func(i int, rel graph.Relation) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, err := store.Collapsed(rel)
		if err != nil {
			return NewError("ComputeAll").Relation(rel).Cause(err).Err()
		}
		results[i] = e.Compute(rel, g)
		return nil
	}

	if e.opts.Parallel {
		eg, egCtx := errgroup.WithContext(ctx)
		for i, rel := range graph.Relations {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				return compute(i, rel)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, rel := range graph.Relations {
			if err := compute(i, rel); err != nil {
				return nil, err
			}
		}
	}

	out := make(map[graph.Relation]*GraphMetrics, len(results))
	for _, m := range results {
		out[m.Relation] = m
	}
	return out, nil
}
