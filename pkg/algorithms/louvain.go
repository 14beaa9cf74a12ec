package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// LouvainOptions configures Louvain community detection
type LouvainOptions struct {
	// Resolution above 1 favours smaller communities, below 1 larger ones.
	Resolution float64
	// MaxLevels bounds the number of aggregation rounds (0 = until stable).
	MaxLevels int
}

// DefaultLouvainOptions returns the defaults used by the community detector
func DefaultLouvainOptions() LouvainOptions {
	return LouvainOptions{Resolution: 1.0}
}

const (
	louvainMaxSweeps = 100
	louvainEpsilon   = 1e-12
)

// undirected is one level of the Louvain hierarchy: a symmetric weighted graph
// whose nodes are communities of the previous level.
type undirected struct {
	adj    []map[int]float64
	order  [][]int
	loops  []float64
	degree []float64
	total  float64
}

// project builds the undirected projection of a collapsed graph. The weight of
// {u,v} is the sum of the u->v and v->u weights.
func project(x *indexed) *undirected {
	n := x.len()
	u := &undirected{
		adj:    make([]map[int]float64, n),
		order:  make([][]int, n),
		loops:  make([]float64, n),
		degree: make([]float64, n),
	}
	for i := range u.adj {
		u.adj[i] = make(map[int]float64)
	}
	for from := range x.out {
		for i, to := range x.out[from] {
			w := x.outW[from][i]
			u.adj[from][to] += w
			u.adj[to][from] += w
		}
	}
	u.finish()
	return u
}

func (u *undirected) finish() {
	u.total = 0
	for i := range u.adj {
		u.order[i] = u.order[i][:0]
		for j := range u.adj[i] {
			u.order[i] = append(u.order[i], j)
		}
		sort.Ints(u.order[i])

		d := 2 * u.loops[i]
		for _, j := range u.order[i] {
			d += u.adj[i][j]
		}
		u.degree[i] = d
		u.total += d
	}
	u.total /= 2
}

// moveNodes runs the local moving phase. Nodes are visited in position order and
// join the neighbouring community whose gain beats staying put.
func (u *undirected) moveNodes(resolution float64) ([]int, bool) {
	n := len(u.adj)
	community := make([]int, n)
	tot := make([]float64, n)
	for i := range community {
		community[i] = i
		tot[i] = u.degree[i]
	}

	twoM := 2 * u.total
	improved := false
	weights := make(map[int]float64)
	candidates := make([]int, 0)

	for sweep := 0; sweep < louvainMaxSweeps; sweep++ {
		moves := 0
		for i := 0; i < n; i++ {
			current := community[i]
			ki := u.degree[i]
			tot[current] -= ki

			for k := range weights {
				delete(weights, k)
			}
			candidates = candidates[:0]
			for _, j := range u.order[i] {
				c := community[j]
				if _, seen := weights[c]; !seen {
					candidates = append(candidates, c)
				}
				weights[c] += u.adj[i][j]
			}

			best := current
			bestGain := weights[current] - resolution*tot[current]*ki/twoM
			for _, c := range candidates {
				gain := weights[c] - resolution*tot[c]*ki/twoM
				if gain > bestGain+louvainEpsilon {
					best, bestGain = c, gain
				}
			}

			tot[best] += ki
			community[i] = best
			if best != current {
				moves++
			}
		}
		if moves == 0 {
			break
		}
		improved = true
	}

	return community, improved
}

// aggregate collapses each community into one node of the next level
func (u *undirected) aggregate(community []int, count int) *undirected {
	next := &undirected{
		adj:    make([]map[int]float64, count),
		order:  make([][]int, count),
		loops:  make([]float64, count),
		degree: make([]float64, count),
	}
	for i := range next.adj {
		next.adj[i] = make(map[int]float64)
	}
	for i := range u.adj {
		ci := community[i]
		next.loops[ci] += u.loops[i]
		for _, j := range u.order[i] {
			w := u.adj[i][j]
			cj := community[j]
			if ci == cj {
				// each internal pair is seen from both ends
				next.loops[ci] += w / 2
				continue
			}
			next.adj[ci][cj] += w
		}
	}
	next.finish()
	return next
}

// renumber relabels communities 0..k-1 by first appearance in position order
func renumber(community []int) ([]int, int) {
	labels := make(map[int]int)
	out := make([]int, len(community))
	for i, c := range community {
		label, ok := labels[c]
		if !ok {
			label = len(labels)
			labels[c] = label
		}
		out[i] = label
	}
	return out, len(labels)
}

// Louvain partitions the undirected projection of g by greedy modularity
// optimisation with aggregation. Nodes are visited in insertion order and
// communities are numbered by the first node that belongs to them, so the
// partition is reproducible for a given graph. Nodes without edges stay alone.
func Louvain(g *graph.Digraph, opts LouvainOptions) *CommunityDetectionResult {
	if opts.Resolution <= 0 {
		opts.Resolution = DefaultLouvainOptions().Resolution
	}

	x := newIndexed(g)
	n := x.len()
	membership := make([]int, n)
	for i := range membership {
		membership[i] = i
	}

	result := &CommunityDetectionResult{}
	level := project(x)

	if level.total > 0 {
		for opts.MaxLevels <= 0 || result.Levels < opts.MaxLevels {
			community, improved := level.moveNodes(opts.Resolution)
			if !improved {
				break
			}
			community, count := renumber(community)
			for i := range membership {
				membership[i] = community[membership[i]]
			}
			level = level.aggregate(community, count)
			result.Levels++
		}
	}

	membership, count := renumber(membership)

	result.Communities = make([]*Community, count)
	result.NodeCommunity = make(map[int64]int, n)
	for c := range result.Communities {
		result.Communities[c] = &Community{ID: c, Nodes: make([]int64, 0)}
	}
	for i, c := range membership {
		result.NodeCommunity[x.ids[i]] = c
		result.Communities[c].Nodes = append(result.Communities[c].Nodes, x.ids[i])
	}
	for _, c := range result.Communities {
		c.Size = len(c.Nodes)
		c.Density = subgraphDensity(g, c.Nodes)
	}
	result.Modularity = modularity(x, membership, opts.Resolution)

	return result
}

// Modularity scores a partition of g's undirected projection
func Modularity(g *graph.Digraph, nodeCommunity map[int64]int, resolution float64) float64 {
	x := newIndexed(g)
	return modularity(x, nodeCommunityPositions(x, nodeCommunity), resolution)
}

func modularity(x *indexed, community []int, resolution float64) float64 {
	u := project(x)
	if u.total == 0 {
		return 0.0
	}

	count := 0
	for _, c := range community {
		if c+1 > count {
			count = c + 1
		}
	}
	internal := make([]float64, count)
	tot := make([]float64, count)
	for i := range u.adj {
		c := community[i]
		tot[c] += u.degree[i]
		internal[c] += u.loops[i]
		for _, j := range u.order[i] {
			if community[j] == c {
				internal[c] += u.adj[i][j] / 2
			}
		}
	}

	q := 0.0
	for c, in := range internal {
		share := tot[c] / (2 * u.total)
		q += in/u.total - resolution*share*share
	}
	return q
}
