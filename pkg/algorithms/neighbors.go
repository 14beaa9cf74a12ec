package algorithms

import (
	"math"
	"sort"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// NeighborDirection controls which edges to follow when building neighbor sets.
type NeighborDirection int

const (
	DirectionOut  NeighborDirection = iota // outgoing edges only
	DirectionIn                            // incoming edges only
	DirectionBoth                          // union of both
)

// SimilarityMetric selects which similarity formula to use.
type SimilarityMetric int

const (
	SimilarityJaccard SimilarityMetric = iota // |A∩B| / |A∪B|
	SimilarityOverlap                         // |A∩B| / min(|A|,|B|)
	SimilarityCosine                          // |A∩B| / sqrt(|A|×|B|)
)

// NodeSimilarityOptions configures SimilarNodes.
type NodeSimilarityOptions struct {
	Metric    SimilarityMetric
	Direction NeighborDirection
	TopK      int // max results (0 = all)
}

// NodeSimilarityScore holds a similarity score between two nodes.
type NodeSimilarityScore struct {
	NodeA int64
	NodeB int64
	Score float64
}

// DefaultNodeSimilarityOptions returns sensible defaults.
func DefaultNodeSimilarityOptions() NodeSimilarityOptions {
	return NodeSimilarityOptions{
		Metric:    SimilarityJaccard,
		Direction: DirectionOut,
		TopK:      10,
	}
}

// Neighbors returns the neighbours of id in the given direction, in edge
// insertion order and without duplicates.
func Neighbors(g *graph.Digraph, id int64, direction NeighborDirection) []int64 {
	seen := make(map[int64]bool)
	out := make([]int64, 0)

	if direction == DirectionOut || direction == DirectionBoth {
		for _, e := range g.OutgoingEdges(id) {
			if !seen[e.ToNodeID] {
				seen[e.ToNodeID] = true
				out = append(out, e.ToNodeID)
			}
		}
	}
	if direction == DirectionIn || direction == DirectionBoth {
		for _, e := range g.IncomingEdges(id) {
			if !seen[e.FromNodeID] {
				seen[e.FromNodeID] = true
				out = append(out, e.FromNodeID)
			}
		}
	}
	return out
}

func neighborSet(g *graph.Digraph, id int64, direction NeighborDirection) map[int64]bool {
	ids := Neighbors(g, id, direction)
	set := make(map[int64]bool, len(ids))
	for _, n := range ids {
		set[n] = true
	}
	return set
}

// CommonNeighbors returns the neighbours shared by a and b, ordered as they
// appear among a's neighbours. The endpoints themselves are never included.
func CommonNeighbors(g *graph.Digraph, a, b int64, direction NeighborDirection) []int64 {
	other := neighborSet(g, b, direction)
	common := make([]int64, 0)
	for _, id := range Neighbors(g, a, direction) {
		if other[id] && id != a && id != b {
			common = append(common, id)
		}
	}
	return common
}

// computeSimilarity calculates the similarity between two neighbor sets.
func computeSimilarity(setA, setB map[int64]bool, metric SimilarityMetric) float64 {
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	// Iterate over the smaller set for efficiency
	intersection := 0
	small, big := setA, setB
	if len(setA) > len(setB) {
		small, big = setB, setA
	}
	for id := range small {
		if big[id] {
			intersection++
		}
	}

	if intersection == 0 {
		return 0.0
	}

	switch metric {
	case SimilarityJaccard:
		union := len(setA) + len(setB) - intersection
		return float64(intersection) / float64(union)
	case SimilarityOverlap:
		minSize := len(setA)
		if len(setB) < minSize {
			minSize = len(setB)
		}
		return float64(intersection) / float64(minSize)
	case SimilarityCosine:
		return float64(intersection) / math.Sqrt(float64(len(setA))*float64(len(setB)))
	default:
		return 0.0
	}
}

// Similarity computes the neighbourhood similarity of two nodes.
func Similarity(g *graph.Digraph, a, b int64, direction NeighborDirection, metric SimilarityMetric) float64 {
	return computeSimilarity(neighborSet(g, a, direction), neighborSet(g, b, direction), metric)
}

// SimilarNodes scores id against every other node. Results are sorted descending
// by score with insertion order breaking ties; zero-score pairs are excluded.
func SimilarNodes(g *graph.Digraph, id int64, opts NodeSimilarityOptions) []NodeSimilarityScore {
	source := neighborSet(g, id, opts.Direction)

	var scores []NodeSimilarityScore
	for _, node := range g.Nodes() {
		other := node.ID()
		if other == id {
			continue
		}
		score := computeSimilarity(source, neighborSet(g, other, opts.Direction), opts.Metric)
		if score > 0 {
			scores = append(scores, NodeSimilarityScore{NodeA: id, NodeB: other, Score: score})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if opts.TopK > 0 && len(scores) > opts.TopK {
		scores = scores[:opts.TopK]
	}
	return scores
}
