package algorithms

import (
	"testing"

	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// setupTestGraph creates a collapsed graph with nodes 1..n and the given edges
func setupTestGraph(t *testing.T, n int, edges ...[2]int64) *graph.Digraph {
	t.Helper()

	g := graph.NewDigraph(graph.Connections)
	users := make(map[int64]*social.User, n)
	for i := 1; i <= n; i++ {
		u := social.NewUser(int64(i), "")
		users[u.ID] = u
		g.AddNode(u)
	}
	for _, e := range edges {
		from, ok := users[e[0]]
		if !ok {
			t.Fatalf("edge %v references unknown node %d", e, e[0])
		}
		to, ok := users[e[1]]
		if !ok {
			t.Fatalf("edge %v references unknown node %d", e, e[1])
		}
		g.AddEdge(from, to, 1, nil)
	}
	return g
}

// setupBridgedTriangles creates two triangles joined by the bridge 3->4.
// The first triangle is reciprocal, the second a directed cycle 4->5->6->4.
func setupBridgedTriangles(t *testing.T) *graph.Digraph {
	t.Helper()
	return setupTestGraph(t, 6,
		[2]int64{1, 2}, [2]int64{2, 1},
		[2]int64{2, 3}, [2]int64{3, 2},
		[2]int64{1, 3}, [2]int64{3, 1},
		[2]int64{3, 4},
		[2]int64{4, 5}, [2]int64{5, 6}, [2]int64{6, 4},
	)
}
