package analysis

import (
	"strings"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// Metric names a per-node attribute written by the metric engine
type Metric int

const (
	// Centrality is directed degree centrality
	Centrality Metric = iota
	// Betweenness is (possibly sampled) betweenness centrality
	Betweenness
	// Eigenvector is eigenvector centrality of the in-link relation
	Eigenvector
)

// Metrics lists the tracked metrics in report order
var Metrics = []Metric{Centrality, Betweenness, Eigenvector}

func (m Metric) String() string {
	switch m {
	case Centrality:
		return "centrality"
	case Betweenness:
		return "betweenness"
	case Eigenvector:
		return "eigenvector"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a tracked metric
func (m Metric) Valid() bool {
	return m >= Centrality && m <= Eigenvector
}

// ParseMetric converts a metric name. "degree" is accepted for centrality.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "centrality", "degree":
		return Centrality, nil
	case "betweenness":
		return Betweenness, nil
	case "eigenvector":
		return Eigenvector, nil
	default:
		return 0, InvalidMetricError("ParseMetric", s)
	}
}

// Value reads the metric attribute of a node. ok is false before the engine ran.
func (m Metric) Value(n *graph.Node) (float64, bool) {
	if !n.HasMetrics {
		return 0, false
	}
	switch m {
	case Centrality:
		return n.Centrality, true
	case Betweenness:
		return n.Betweenness, true
	case Eigenvector:
		return n.Eigenvector, true
	default:
		return 0, false
	}
}
