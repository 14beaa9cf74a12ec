package algorithms

import "github.com/dd0wney/cluso-social/pkg/graph"

// TriangleCountResult holds triangle counting results including per-node counts,
// global count, clustering coefficients and global transitivity.
type TriangleCountResult struct {
	PerNode                map[int64]int
	GlobalCount            int
	ClusteringCoefficients map[int64]float64
	// Triples is the number of connected triples (paths of length two).
	Triples      int
	Transitivity float64
}

// CountTriangles counts triangles in the graph, treating all edges as undirected.
// For each node u, it iterates over pairs (v,w) in u's neighbor set; if v and w
// are also neighbors, that's a triangle. Each triangle is counted once per
// participating node, so GlobalCount = sum(PerNode) / 3.
// Transitivity is 3*triangles / connected triples, 0 when there are no triples.
func CountTriangles(g *graph.Digraph) *TriangleCountResult {
	x := newIndexed(g)
	n := x.len()

	// Undirected neighbour sets, self-loops are never present in a Digraph
	neighborSets := make([]map[int]bool, n)
	neighborLists := make([][]int, n)
	for u := 0; u < n; u++ {
		set := make(map[int]bool, len(x.out[u])+len(x.in[u]))
		list := make([]int, 0, len(x.out[u])+len(x.in[u]))
		for _, v := range x.out[u] {
			if !set[v] {
				set[v] = true
				list = append(list, v)
			}
		}
		for _, v := range x.in[u] {
			if !set[v] {
				set[v] = true
				list = append(list, v)
			}
		}
		neighborSets[u] = set
		neighborLists[u] = list
	}

	perNode := make(map[int64]int, n)
	coefficients := make(map[int64]float64, n)
	total, triples := 0, 0

	for u := 0; u < n; u++ {
		neighbors := neighborLists[u]
		count := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if neighborSets[neighbors[i]][neighbors[j]] {
					count++
				}
			}
		}
		perNode[x.ids[u]] = count
		total += count

		k := len(neighbors)
		possible := k * (k - 1) / 2
		triples += possible
		if possible == 0 {
			coefficients[x.ids[u]] = 0.0
			continue
		}
		coefficients[x.ids[u]] = float64(count) / float64(possible)
	}

	result := &TriangleCountResult{
		PerNode:                perNode,
		GlobalCount:            total / 3,
		ClusteringCoefficients: coefficients,
		Triples:                triples,
	}
	if triples > 0 {
		result.Transitivity = float64(total) / float64(triples)
	}
	return result
}

// Transitivity returns the global transitivity of the undirected projection
func Transitivity(g *graph.Digraph) float64 {
	if g.Empty() {
		return 0.0
	}
	return CountTriangles(g).Transitivity
}

// Density returns m / (n(n-1)) for the collapsed graph, 0 for graphs without edges
func Density(g *graph.Digraph) float64 {
	n := g.NodeCount()
	if n < 2 || g.Empty() {
		return 0.0
	}
	return float64(g.EdgeCount()) / float64(n*(n-1))
}
