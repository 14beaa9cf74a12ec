package algorithms

import "github.com/dd0wney/cluso-social/pkg/graph"

// ShortestPath finds one shortest path between two nodes using bidirectional BFS.
// It returns nil when either node is missing or no path exists.
func ShortestPath(g *graph.Digraph, startID, endID int64) []int64 {
	if !g.HasNode(startID) || !g.HasNode(endID) {
		return nil
	}
	if startID == endID {
		return []int64{startID}
	}

	forwardQueue := []int64{startID}
	forwardVisited := map[int64]int64{startID: startID} // node -> parent

	backwardQueue := []int64{endID}
	backwardVisited := map[int64]int64{endID: endID} // node -> child

	successors := func(id int64) []int64 { return g.Successors(id) }
	predecessors := func(id int64) []int64 { return g.Predecessors(id) }

	// Bidirectional BFS; both frontiers must be live for a path to exist
	for len(forwardQueue) > 0 && len(backwardQueue) > 0 {
		var meeting int64
		var met bool

		forwardQueue, meeting, met = expandFrontier(forwardQueue, successors, forwardVisited, backwardVisited)
		if met {
			return reconstructPath(meeting, forwardVisited, backwardVisited)
		}

		backwardQueue, meeting, met = expandFrontier(backwardQueue, predecessors, backwardVisited, forwardVisited)
		if met {
			return reconstructPath(meeting, forwardVisited, backwardVisited)
		}
	}

	return nil
}

// expandFrontier expands one level of BFS and reports the node where the two
// searches meet, if they do.
func expandFrontier(
	queue []int64,
	neighbors func(int64) []int64,
	visited map[int64]int64,
	otherVisited map[int64]int64,
) ([]int64, int64, bool) {
	next := make([]int64, 0, len(queue))
	for _, current := range queue {
		for _, neighbor := range neighbors(current) {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = current
			if _, found := otherVisited[neighbor]; found {
				return nil, neighbor, true
			}
			next = append(next, neighbor)
		}
	}
	return next, 0, false
}

// reconstructPath builds the path from start to end through the meeting node
func reconstructPath(meeting int64, forwardVisited, backwardVisited map[int64]int64) []int64 {
	forwardPath := make([]int64, 0)
	node := meeting
	for node != forwardVisited[node] {
		forwardPath = append(forwardPath, node)
		node = forwardVisited[node]
	}
	forwardPath = append(forwardPath, node)

	for i, j := 0, len(forwardPath)-1; i < j; i, j = i+1, j-1 {
		forwardPath[i], forwardPath[j] = forwardPath[j], forwardPath[i]
	}

	node = meeting
	for node != backwardVisited[node] {
		node = backwardVisited[node]
		forwardPath = append(forwardPath, node)
	}
	return forwardPath
}

// Distances returns the hop distance from source to every reachable node
func Distances(g *graph.Digraph, sourceID int64) map[int64]int {
	distances := make(map[int64]int)
	if !g.HasNode(sourceID) {
		return distances
	}
	distances[sourceID] = 0

	queue := []int64{sourceID}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		for _, neighbor := range g.Successors(current) {
			if _, visited := distances[neighbor]; !visited {
				distances[neighbor] = distances[current] + 1
				queue = append(queue, neighbor)
			}
		}
	}
	return distances
}

// HasPath reports whether to is reachable from from
func HasPath(g *graph.Digraph, from, to int64) bool {
	_, ok := ShortestPathLength(g, from, to)
	return ok
}

// ShortestPathLength returns the hop count of the shortest from->to path
func ShortestPathLength(g *graph.Digraph, from, to int64) (int, bool) {
	if !g.HasNode(from) || !g.HasNode(to) {
		return 0, false
	}
	if from == to {
		return 0, true
	}

	distances := map[int64]int{from: 0}
	queue := []int64{from}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		for _, neighbor := range g.Successors(current) {
			if _, visited := distances[neighbor]; visited {
				continue
			}
			distances[neighbor] = distances[current] + 1
			if neighbor == to {
				return distances[neighbor], true
			}
			queue = append(queue, neighbor)
		}
	}
	return 0, false
}

// AllShortestPaths enumerates every shortest path from->to. Paths are ordered by
// the BFS discovery order of their predecessors. It returns nil when no path exists.
func AllShortestPaths(g *graph.Digraph, from, to int64) [][]int64 {
	if !g.HasNode(from) || !g.HasNode(to) {
		return nil
	}
	if from == to {
		return [][]int64{{from}}
	}

	distances := map[int64]int{from: 0}
	predecessors := make(map[int64][]int64)
	queue := []int64{from}

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		if d, ok := distances[to]; ok && distances[current] >= d {
			break
		}
		for _, neighbor := range g.Successors(current) {
			d, visited := distances[neighbor]
			if !visited {
				distances[neighbor] = distances[current] + 1
				queue = append(queue, neighbor)
				d = distances[neighbor]
			}
			if d == distances[current]+1 {
				predecessors[neighbor] = append(predecessors[neighbor], current)
			}
		}
	}

	if _, ok := distances[to]; !ok {
		return nil
	}

	var paths [][]int64
	var walk func(node int64, suffix []int64)
	walk = func(node int64, suffix []int64) {
		suffix = append([]int64{node}, suffix...)
		if node == from {
			paths = append(paths, suffix)
			return
		}
		for _, p := range predecessors[node] {
			walk(p, suffix)
		}
	}
	walk(to, nil)
	return paths
}
