package algorithms

import (
	"container/heap"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// RankedNode holds a node with its score
type RankedNode struct {
	NodeID int64
	Score  float64
	Node   *graph.Node
}

// rankedNodeHeap is a min-heap used to keep the top N nodes.
// Among equal scores the later-inserted node sorts lower, so it is evicted first
// and ties resolve to insertion order.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].Node.Index > h[j].Node.Index
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopNodes returns the n highest-scoring nodes of g, descending, ties broken by
// insertion order. Nodes without a score are skipped.
// Time complexity: O(V log n)
func TopNodes(g *graph.Digraph, score func(*graph.Node) (float64, bool), n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for _, node := range g.Nodes() {
		s, ok := score(node)
		if !ok {
			continue
		}
		rn := RankedNode{NodeID: node.ID(), Score: s, Node: node}

		if h.Len() < n {
			heap.Push(&h, rn)
		} else if s > h[0].Score {
			// nodes arrive in insertion order, so an equal score never displaces
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	// Pop yields ascending order
	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}

// TopScores ranks a score map over g's nodes
func TopScores(g *graph.Digraph, scores map[int64]float64, n int) []RankedNode {
	return TopNodes(g, func(node *graph.Node) (float64, bool) {
		s, ok := scores[node.ID()]
		return s, ok
	}, n)
}
