package visualization

import (
	"math"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// CircularLayout places users on one circle. Each community occupies a
// contiguous arc and arcs are separated by an empty slot.
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout implements Layout
func (cl *CircularLayout) ComputeLayout(g *graph.Digraph) (map[int64]Position, error) {
	runs := communityRuns(byCommunity(g.Nodes()))
	positions := make(map[int64]Position, g.NodeCount())
	if len(runs) == 0 {
		return positions, nil
	}

	slots := g.NodeCount()
	if len(runs) > 1 {
		slots += len(runs)
	}
	step := 2 * math.Pi / float64(slots)

	area := cl.config.canvas()
	cx, cy := area.x0+area.w/2, area.y0+area.h/2
	r := math.Min(area.w, area.h) / 2

	slot := 0
	for _, run := range runs {
		for _, n := range run {
			angle := float64(slot) * step
			positions[n.ID()] = Position{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
			slot++
		}
		if len(runs) > 1 {
			slot++
		}
	}
	return positions, nil
}
