package visualization

import (
	"math"
	"slices"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// canvas is the drawable area of a LayoutConfig
type canvas struct {
	x0, y0, w, h float64
}

func (c *LayoutConfig) canvas() canvas {
	return canvas{x0: c.Padding, y0: c.Padding, w: c.Width - 2*c.Padding, h: c.Height - 2*c.Padding}
}

// normalizePositions stretches positions so their bounding box fills the canvas.
// A degenerate axis (all nodes on one line) is not stretched.
func normalizePositions(positions map[int64]Position, width, height, padding float64) map[int64]Position {
	if len(positions) == 0 {
		return positions
	}
	area := (&LayoutConfig{Width: width, Height: height, Padding: padding}).canvas()

	lo := Position{X: math.Inf(1), Y: math.Inf(1)}
	hi := Position{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range positions {
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
	}
	spanX, spanY := hi.X-lo.X, hi.Y-lo.Y
	if spanX < 0.01 {
		spanX = 1
	}
	if spanY < 0.01 {
		spanY = 1
	}

	out := make(map[int64]Position, len(positions))
	for id, p := range positions {
		out[id] = Position{
			X: area.x0 + (p.X-lo.X)/spanX*area.w,
			Y: area.y0 + (p.Y-lo.Y)/spanY*area.h,
		}
	}
	return out
}

// byCommunity orders nodes by community, keeping insertion order inside each one.
// Nodes without a community sort as community 0.
func byCommunity(nodes []*graph.Node) []*graph.Node {
	ordered := slices.Clone(nodes)
	slices.SortStableFunc(ordered, func(a, b *graph.Node) int {
		return a.Community - b.Community
	})
	return ordered
}

// communityRuns splits nodes ordered by byCommunity into one slice per community
func communityRuns(ordered []*graph.Node) [][]*graph.Node {
	var runs [][]*graph.Node
	for i, n := range ordered {
		if i == 0 || n.Community != ordered[i-1].Community {
			runs = append(runs, nil)
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], n)
	}
	return runs
}
