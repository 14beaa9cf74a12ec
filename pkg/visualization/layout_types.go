package visualization

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for the initial placement of iterative layouts
}

// DefaultLayoutConfig returns the canvas used by exports
func DefaultLayoutConfig() *LayoutConfig {
	return &LayoutConfig{Width: 1000, Height: 1000, Iterations: 50, Padding: 50, Seed: 1}
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *graph.Digraph) (map[int64]Position, error)
}

// Kind names a layout algorithm
type Kind string

const (
	KindNone         Kind = "none"
	KindForce        Kind = "force"
	KindCircular     Kind = "circular"
	KindHierarchical Kind = "hierarchical"
)

// ParseKind converts a config value to a Kind. The empty string means no layout.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindNone:
		return KindNone, nil
	case KindForce, KindCircular, KindHierarchical:
		return k, nil
	default:
		return "", fmt.Errorf("unknown layout %q", s)
	}
}

// New returns the layout for kind, or nil for KindNone
func New(kind Kind, config *LayoutConfig) (Layout, error) {
	if config == nil {
		config = DefaultLayoutConfig()
	}
	switch kind {
	case KindNone, "":
		return nil, nil
	case KindForce:
		return NewForceDirectedLayout(config), nil
	case KindCircular:
		return NewCircularLayout(config), nil
	case KindHierarchical:
		return NewHierarchicalLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", kind)
	}
}
