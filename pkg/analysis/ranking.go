package analysis

import (
	"github.com/dd0wney/cluso-social/pkg/algorithms"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// RankedUser is one entry of a top-k ranking
type RankedUser struct {
	User  *social.User
	Value float64
}

// CommunityBreakdown holds the top nodes of one community per tracked metric
type CommunityBreakdown struct {
	Index   int
	Size    int
	Density float64
	Top     map[Metric][]RankedUser
}

func ranked(nodes []algorithms.RankedNode) []RankedUser {
	out := make([]RankedUser, len(nodes))
	for i, n := range nodes {
		out[i] = RankedUser{User: n.Node.User, Value: n.Score}
	}
	return out
}

// clampTop limits top to available, recording a warning when it had to
func (a *Analyzer) clampTop(op string, rel graph.Relation, top, available int) int {
	if top > available {
		a.session.Warn(op, rel, "top %d exceeds %d available nodes, using %d", top, available, available)
		return available
	}
	return top
}

// TopNodes ranks the nodes of rel by metric, descending. Equal values keep the
// graph's insertion order. top is clamped to the node count with a warning, and a
// graph without edges yields an empty ranking.
func (a *Analyzer) TopNodes(rel graph.Relation, metric Metric, top int) ([]RankedUser, error) {
	if !metric.Valid() {
		return nil, InvalidMetricError("TopNodes", metric.String())
	}
	g, err := a.analysed("TopNodes", rel)
	if err != nil {
		return nil, err
	}
	if g.Empty() || top <= 0 {
		return []RankedUser{}, nil
	}

	top = a.clampTop("TopNodes", rel, top, g.NodeCount())
	return ranked(algorithms.TopNodes(g, metric.Value, top)), nil
}

// CommunityMetrics ranks the members of one community by every tracked metric.
// An index outside [0, count) is rejected; top is clamped to the community size.
func (a *Analyzer) CommunityMetrics(rel graph.Relation, index, top int) (*CommunityBreakdown, error) {
	g, err := a.analysed("CommunityMetrics", rel)
	if err != nil {
		return nil, err
	}
	communities := a.communities[rel]
	if index < 0 || index >= communities.Count {
		return nil, CommunityIndexError(rel, index, communities.Count)
	}

	c := communities.Communities[index]
	breakdown := &CommunityBreakdown{
		Index:   index,
		Size:    c.Size,
		Density: c.Density,
		Top:     make(map[Metric][]RankedUser, len(Metrics)),
	}
	if top <= 0 {
		return breakdown, nil
	}
	top = a.clampTop("CommunityMetrics", rel, top, c.Size)

	for _, metric := range Metrics {
		inCommunity := func(n *graph.Node) (float64, bool) {
			if !n.HasCommunity || n.Community != index {
				return 0, false
			}
			return metric.Value(n)
		}
		breakdown.Top[metric] = ranked(algorithms.TopNodes(g, inCommunity, top))
	}
	return breakdown, nil
}
