package algorithms

import "github.com/dd0wney/cluso-social/pkg/graph"

// indexed is a dense view of a collapsed graph. Positions follow node insertion
// order so every traversal below visits nodes and neighbours deterministically.
type indexed struct {
	ids  []int64
	pos  map[int64]int
	out  [][]int
	outW [][]float64
	in   [][]int
}

func newIndexed(g *graph.Digraph) *indexed {
	nodes := g.Nodes()
	x := &indexed{
		ids:  make([]int64, len(nodes)),
		pos:  make(map[int64]int, len(nodes)),
		out:  make([][]int, len(nodes)),
		outW: make([][]float64, len(nodes)),
		in:   make([][]int, len(nodes)),
	}
	for i, n := range nodes {
		x.ids[i] = n.ID()
		x.pos[n.ID()] = i
	}
	for _, e := range g.Edges() {
		u, v := x.pos[e.FromNodeID], x.pos[e.ToNodeID]
		x.out[u] = append(x.out[u], v)
		x.outW[u] = append(x.outW[u], e.Weight)
		x.in[v] = append(x.in[v], u)
	}
	return x
}

func (x *indexed) len() int {
	return len(x.ids)
}

// scores maps a dense score vector back to node IDs
func (x *indexed) scores(values []float64) map[int64]float64 {
	out := make(map[int64]float64, len(values))
	for i, v := range values {
		out[x.ids[i]] = v
	}
	return out
}
