package algorithms

import (
	"reflect"
	"testing"
)

func TestLouvain_BridgedTriangles(t *testing.T) {
	g := setupBridgedTriangles(t)

	result := Louvain(g, DefaultLouvainOptions())

	if result.Count() != 2 {
		t.Fatalf("Expected 2 communities, got %d", result.Count())
	}
	left := result.NodeCommunity[1]
	right := result.NodeCommunity[4]
	if left != 0 || right != 1 {
		t.Errorf("Expected communities numbered by first member, got %d and %d", left, right)
	}
	for _, id := range []int64{2, 3} {
		if result.NodeCommunity[id] != left {
			t.Errorf("Expected node %d with node 1", id)
		}
	}
	for _, id := range []int64{5, 6} {
		if result.NodeCommunity[id] != right {
			t.Errorf("Expected node %d with node 4", id)
		}
	}
	if result.Modularity <= 0 {
		t.Errorf("Expected positive modularity, got %f", result.Modularity)
	}
	if result.Communities[0].Size != 3 || result.Communities[1].Size != 3 {
		t.Errorf("Expected two communities of three")
	}
}

func TestLouvain_Deterministic(t *testing.T) {
	g := setupBridgedTriangles(t)

	first := Louvain(g, DefaultLouvainOptions())
	second := Louvain(g, DefaultLouvainOptions())

	if !reflect.DeepEqual(first.NodeCommunity, second.NodeCommunity) {
		t.Errorf("Expected identical partitions, got %v and %v", first.NodeCommunity, second.NodeCommunity)
	}
	if first.Modularity != second.Modularity {
		t.Errorf("Expected identical modularity, got %f and %f", first.Modularity, second.Modularity)
	}
}

func TestLouvain_NoEdges(t *testing.T) {
	g := setupTestGraph(t, 3)

	result := Louvain(g, DefaultLouvainOptions())

	if result.Count() != 3 {
		t.Errorf("Expected isolated nodes to stay alone, got %d communities", result.Count())
	}
	if result.Modularity != 0 {
		t.Errorf("Expected modularity 0, got %f", result.Modularity)
	}
}

func TestLouvain_CommunityIDsInRange(t *testing.T) {
	g := setupTestGraph(t, 8,
		[2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 1},
		[2]int64{4, 5}, [2]int64{5, 6}, [2]int64{6, 4},
		[2]int64{7, 8},
	)

	result := Louvain(g, DefaultLouvainOptions())

	for id, c := range result.NodeCommunity {
		if c < 0 || c >= result.Count() {
			t.Errorf("node %d: community %d out of range [0, %d)", id, c, result.Count())
		}
	}
	if result.Count() != 3 {
		t.Errorf("Expected one community per component, got %d", result.Count())
	}
}

func TestModularity_MatchesLouvain(t *testing.T) {
	g := setupBridgedTriangles(t)

	result := Louvain(g, DefaultLouvainOptions())
	if got := Modularity(g, result.NodeCommunity, 1.0); got != result.Modularity {
		t.Errorf("Expected Modularity() = %f, got %f", result.Modularity, got)
	}

	single := make(map[int64]int, g.NodeCount())
	for _, id := range g.NodeIDs() {
		single[id] = 0
	}
	if got := Modularity(g, single, 1.0); got > 1e-12 || got < -1e-12 {
		t.Errorf("Expected modularity 0 for a single community, got %f", got)
	}
}

func TestConnectedComponents(t *testing.T) {
	g := setupTestGraph(t, 5, [2]int64{1, 2}, [2]int64{3, 2}, [2]int64{4, 5})

	result := ConnectedComponents(g)

	if result.Count() != 2 {
		t.Fatalf("Expected 2 components, got %d", result.Count())
	}
	if !reflect.DeepEqual(result.Communities[0].Nodes, []int64{1, 2, 3}) {
		t.Errorf("Expected first component [1 2 3], got %v", result.Communities[0].Nodes)
	}
	if result.NodeCommunity[5] != 1 {
		t.Errorf("Expected node 5 in component 1, got %d", result.NodeCommunity[5])
	}
}
