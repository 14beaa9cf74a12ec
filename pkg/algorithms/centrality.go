package algorithms

import (
	"math/rand"
	"sort"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// DefaultSampleThreshold is the node count above which betweenness switches from
// exact all-sources Brandes to sampled sources.
const DefaultSampleThreshold = 50

// BetweennessOptions configures BetweennessCentrality
type BetweennessOptions struct {
	// SampleThreshold is the largest graph computed exactly. Larger graphs use
	// k = floor(n/3) sampled sources.
	SampleThreshold int
	// Seed drives the source sampler so repeated runs agree.
	Seed int64
}

// DefaultBetweennessOptions returns the defaults used by the metric engine
func DefaultBetweennessOptions() BetweennessOptions {
	return BetweennessOptions{
		SampleThreshold: DefaultSampleThreshold,
		Seed:            1,
	}
}

// BetweennessResult holds normalised betweenness and how it was obtained
type BetweennessResult struct {
	Scores  map[int64]float64
	Sources int
	Sampled bool
}

// brandes runs the Brandes accumulation from each given source and returns raw,
// unnormalised dependency sums per node position.
func brandes(x *indexed, sources []int) []float64 {
	n := x.len()
	betweenness := make([]float64, n)

	stack := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	delta := make([]float64, n)
	queue := make([]int, 0, n)

	for _, source := range sources {
		stack = stack[:0]
		queue = queue[:0]
		for i := 0; i < n; i++ {
			predecessors[i] = predecessors[i][:0]
			sigma[i] = 0
			distance[i] = -1
			delta[i] = 0
		}

		sigma[source] = 1.0
		distance[source] = 0
		queue = append(queue, source)

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			stack = append(stack, v)

			for _, w := range x.out[v] {
				if distance[w] < 0 {
					queue = append(queue, w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// sampleSources picks k distinct source positions with a seeded generator and
// returns them in ascending order.
func sampleSources(n, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	sources := rng.Perm(n)[:k]
	sort.Ints(sources)
	return sources
}

// BetweennessCentrality computes directed betweenness for every node, normalised
// by 1/((n-1)(n-2)). Graphs above opts.SampleThreshold use floor(n/3) sampled
// sources rescaled by n/k, so their scores are an approximation.
func BetweennessCentrality(g *graph.Digraph, opts BetweennessOptions) *BetweennessResult {
	x := newIndexed(g)
	n := x.len()
	if opts.SampleThreshold <= 0 {
		opts.SampleThreshold = DefaultSampleThreshold
	}

	result := &BetweennessResult{}
	var sources []int
	if n > opts.SampleThreshold && n/3 > 0 {
		sources = sampleSources(n, n/3, opts.Seed)
		result.Sampled = true
	} else {
		sources = make([]int, n)
		for i := range sources {
			sources[i] = i
		}
	}
	result.Sources = len(sources)

	raw := brandes(x, sources)

	scale := 1.0
	if result.Sampled {
		scale = float64(n) / float64(len(sources))
	}
	if n > 2 {
		scale *= 1.0 / float64((n-1)*(n-2))
	}
	for i := range raw {
		raw[i] *= scale
	}

	result.Scores = x.scores(raw)
	return result
}

// DegreeCentrality computes (in-degree + out-degree) / (n-1) for every node.
// Collapsed edges count once regardless of weight.
func DegreeCentrality(g *graph.Digraph) map[int64]float64 {
	n := g.NodeCount()
	degree := make(map[int64]float64, n)

	for _, node := range g.Nodes() {
		id := node.ID()
		if n <= 1 {
			degree[id] = 0.0
			continue
		}
		total := len(g.IncomingEdges(id)) + len(g.OutgoingEdges(id))
		degree[id] = float64(total) / float64(n-1)
	}

	return degree
}
