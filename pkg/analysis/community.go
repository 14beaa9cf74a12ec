package analysis

import (
	"github.com/dd0wney/cluso-social/pkg/algorithms"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/logging"
)

// CommunityResult is the partition of one relation graph
type CommunityResult struct {
	Relation    graph.Relation
	Count       int
	Modularity  float64
	Levels      int
	Communities []*algorithms.Community
}

// CommunityDetector partitions collapsed graphs with Louvain and tags their nodes
type CommunityDetector struct {
	opts    algorithms.LouvainOptions
	session *Session
}

// NewCommunityDetector creates a detector bound to a session
func NewCommunityDetector(session *Session, opts algorithms.LouvainOptions) *CommunityDetector {
	return &CommunityDetector{opts: opts, session: session}
}

// Detect partitions g and writes each node's community. Community IDs are in
// [0, Count) and follow the insertion order of the first member.
func (d *CommunityDetector) Detect(rel graph.Relation, g *graph.Digraph) *CommunityResult {
	partition := algorithms.Louvain(g, d.opts)

	for _, n := range g.Nodes() {
		n.Community = partition.NodeCommunity[n.ID()]
		n.HasCommunity = true
	}

	d.session.Logger().Debug("communities detected",
		logging.Component("community_detector"),
		logging.Relation(rel.String()),
		logging.Count(partition.Count()),
		logging.Float64("modularity", partition.Modularity))
	if reg := d.session.Metrics(); reg != nil {
		reg.SetCommunities(rel.String(), partition.Count(), partition.Modularity)
	}

	return &CommunityResult{
		Relation:    rel,
		Count:       partition.Count(),
		Modularity:  partition.Modularity,
		Levels:      partition.Levels,
		Communities: partition.Communities,
	}
}
