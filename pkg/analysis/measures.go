package analysis

import (
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// Measure is the metric triple of one node
type Measure struct {
	Centrality  float64
	Betweenness float64
	Eigenvector float64
}

// Get returns one metric of the triple
func (m Measure) Get(metric Metric) float64 {
	switch metric {
	case Betweenness:
		return m.Betweenness
	case Eigenvector:
		return m.Eigenvector
	default:
		return m.Centrality
	}
}

// Measures maps each relation a user appears in to its metrics there
type Measures map[graph.Relation]Measure

// Measures returns the metrics of one user in every graph it is a node of.
// Seeds appear in all five graphs.
func (a *Analyzer) Measures(ref social.Ref) (Measures, error) {
	if !a.Analysed() {
		return nil, NewError("Measures").Cause(ErrNotAnalysed).Err()
	}
	u, err := a.store.Lookup(ref)
	if err != nil {
		return nil, NewError("Measures").Cause(err).Context("resolve %s", ref).Err()
	}

	out := make(Measures, len(graph.Relations))
	for _, rel := range graph.Relations {
		g, err := a.store.Collapsed(rel)
		if err != nil {
			return nil, NewError("Measures").Relation(rel).Cause(err).Err()
		}
		n, ok := g.Node(u.ID)
		if !ok || !n.HasMetrics {
			continue
		}
		out[rel] = Measure{
			Centrality:  n.Centrality,
			Betweenness: n.Betweenness,
			Eigenvector: n.Eigenvector,
		}
	}
	return out, nil
}
