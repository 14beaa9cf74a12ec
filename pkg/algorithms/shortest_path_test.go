package algorithms

import (
	"reflect"
	"testing"
)

// diamond is 1->2->4, 1->3->4 and a tail 4->5
var diamond = [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}}

func TestShortestPath(t *testing.T) {
	g := setupTestGraph(t, 5, diamond...)

	path := ShortestPath(g, 1, 5)
	if len(path) != 4 {
		t.Fatalf("Expected a 4-node path, got %v", path)
	}
	if path[0] != 1 || path[3] != 5 {
		t.Errorf("Expected path from 1 to 5, got %v", path)
	}
	for i := 0; i < len(path)-1; i++ {
		if !g.HasEdge(path[i], path[i+1]) {
			t.Errorf("Path step %d->%d is not an edge", path[i], path[i+1])
		}
	}

	if p := ShortestPath(g, 5, 1); p != nil {
		t.Errorf("Expected no path against edge direction, got %v", p)
	}
	if p := ShortestPath(g, 3, 3); !reflect.DeepEqual(p, []int64{3}) {
		t.Errorf("Expected trivial path, got %v", p)
	}
	if p := ShortestPath(g, 1, 99); p != nil {
		t.Errorf("Expected nil for unknown node, got %v", p)
	}
}

func TestShortestPath_AdjacentNodes(t *testing.T) {
	g := setupTestGraph(t, 2, [2]int64{1, 2})

	if p := ShortestPath(g, 1, 2); !reflect.DeepEqual(p, []int64{1, 2}) {
		t.Errorf("Expected [1 2], got %v", p)
	}
}

func TestAllShortestPaths(t *testing.T) {
	g := setupTestGraph(t, 5, diamond...)

	paths := AllShortestPaths(g, 1, 5)
	want := [][]int64{{1, 2, 4, 5}, {1, 3, 4, 5}}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("AllShortestPaths(1,5) = %v, want %v", paths, want)
	}

	if paths := AllShortestPaths(g, 5, 1); paths != nil {
		t.Errorf("Expected nil when unreachable, got %v", paths)
	}
}

func TestAllShortestPaths_IgnoresLongerRoutes(t *testing.T) {
	// 1->3 directly and 1->2->3
	g := setupTestGraph(t, 3, [2]int64{1, 2}, [2]int64{2, 3}, [2]int64{1, 3})

	paths := AllShortestPaths(g, 1, 3)
	if !reflect.DeepEqual(paths, [][]int64{{1, 3}}) {
		t.Errorf("Expected only the direct path, got %v", paths)
	}
}

func TestShortestPathLength(t *testing.T) {
	g := setupTestGraph(t, 5, diamond...)

	tests := []struct {
		from, to int64
		length   int
		ok       bool
	}{
		{1, 2, 1, true},
		{1, 4, 2, true},
		{1, 5, 3, true},
		{5, 1, 0, false},
		{2, 3, 0, false},
		{2, 2, 0, true},
	}
	for _, tt := range tests {
		length, ok := ShortestPathLength(g, tt.from, tt.to)
		if length != tt.length || ok != tt.ok {
			t.Errorf("ShortestPathLength(%d,%d) = %d,%v want %d,%v", tt.from, tt.to, length, ok, tt.length, tt.ok)
		}
	}

	if !HasPath(g, 1, 5) || HasPath(g, 5, 1) {
		t.Error("HasPath disagrees with ShortestPathLength")
	}
}

func TestDistances(t *testing.T) {
	g := setupTestGraph(t, 5, diamond...)

	d := Distances(g, 2)
	want := map[int64]int{2: 0, 4: 1, 5: 2}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("Distances(2) = %v, want %v", d, want)
	}
}
