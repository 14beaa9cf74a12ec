package visualization

import (
	"github.com/dd0wney/cluso-social/pkg/graph"
)

// HierarchicalLayout draws a relation top-down. Users nobody points at form the
// first row and every further row holds the users first reached one hop later;
// users unreachable from any root share the last row.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &HierarchicalLayout{config: config}
}

// rows assigns every node to a row by multi-source BFS from the roots. When
// every node has an incoming edge the most followed node (highest in-degree,
// first inserted on ties) is the only root.
func rows(g *graph.Digraph) [][]int64 {
	ids := g.NodeIDs()
	var roots []int64
	for _, id := range ids {
		if len(g.IncomingEdges(id)) == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		best := ids[0]
		for _, id := range ids[1:] {
			if len(g.IncomingEdges(id)) > len(g.IncomingEdges(best)) {
				best = id
			}
		}
		roots = []int64{best}
	}

	row := make(map[int64]int, len(ids))
	out := [][]int64{roots}
	for _, id := range roots {
		row[id] = 0
	}
	for frontier := roots; len(frontier) > 0; {
		var next []int64
		for _, id := range frontier {
			for _, s := range g.Successors(id) {
				if _, ok := row[s]; !ok {
					row[s] = len(out)
					next = append(next, s)
				}
			}
		}
		if len(next) > 0 {
			out = append(out, next)
		}
		frontier = next
	}

	last := len(out) - 1
	for _, id := range ids {
		if _, ok := row[id]; !ok {
			out[last] = append(out[last], id)
		}
	}
	return out
}

// ComputeLayout implements Layout
func (hl *HierarchicalLayout) ComputeLayout(g *graph.Digraph) (map[int64]Position, error) {
	positions := make(map[int64]Position, g.NodeCount())
	if g.NodeCount() == 0 {
		return positions, nil
	}

	area := hl.config.canvas()
	levels := rows(g)
	rowHeight := area.h / float64(len(levels))
	for i, level := range levels {
		y := area.y0 + rowHeight*(float64(i)+0.5)
		gap := area.w / float64(len(level)+1)
		for j, id := range level {
			positions[id] = Position{X: area.x0 + gap*float64(j+1), Y: y}
		}
	}
	return positions, nil
}
