package algorithms

import "github.com/dd0wney/cluso-social/pkg/graph"

// ConnectedComponents finds the weakly connected components of the graph.
// Components are numbered by their first node in insertion order.
func ConnectedComponents(g *graph.Digraph) *CommunityDetectionResult {
	x := newIndexed(g)
	n := x.len()

	visited := make([]bool, n)
	nodeCommunity := make(map[int64]int, n)
	communities := make([]*Community, 0)
	queue := make([]int, 0, n)

	// BFS to find each component
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		component := &Community{
			ID:    len(communities),
			Nodes: make([]int64, 0),
		}

		queue = append(queue[:0], start)
		visited[start] = true

		for head := 0; head < len(queue); head++ {
			u := queue[head]
			component.Nodes = append(component.Nodes, x.ids[u])
			nodeCommunity[x.ids[u]] = component.ID

			for _, v := range x.out[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
			for _, v := range x.in[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}

		component.Size = len(component.Nodes)
		component.Density = subgraphDensity(g, component.Nodes)
		communities = append(communities, component)
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
		Modularity:    modularity(x, nodeCommunityPositions(x, nodeCommunity), 1.0),
	}
}

func nodeCommunityPositions(x *indexed, nodeCommunity map[int64]int) []int {
	out := make([]int, x.len())
	for i, id := range x.ids {
		out[i] = nodeCommunity[id]
	}
	return out
}

// subgraphDensity is the directed edge density among members
func subgraphDensity(g *graph.Digraph, members []int64) float64 {
	k := len(members)
	if k < 2 {
		return 0.0
	}
	in := make(map[int64]bool, k)
	for _, id := range members {
		in[id] = true
	}
	edges := 0
	for _, id := range members {
		for _, e := range g.OutgoingEdges(id) {
			if in[e.ToNodeID] {
				edges++
			}
		}
	}
	return float64(edges) / float64(k*(k-1))
}
