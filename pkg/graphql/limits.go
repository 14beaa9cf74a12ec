package graphql

import (
	"github.com/dd0wney/cluso-social/pkg/validation"
)

// LimitConfig bounds the top argument of ranking queries
type LimitConfig struct {
	// DefaultTop applies when a query leaves top out
	DefaultTop int
	// MaxTop caps any requested top
	MaxTop int
}

// DefaultLimitConfig returns the limits used by the server
func DefaultLimitConfig() LimitConfig {
	return LimitConfig{DefaultTop: 10, MaxTop: validation.MaxTop}
}

// Validate checks that both limits are positive and ordered
func (c LimitConfig) Validate() error {
	cv := validation.NewConfigValidator("limits")
	cv.Positive("max_top", c.MaxTop).
		RangeInt("default_top", c.DefaultTop, 1, max(c.MaxTop, 1))
	return cv.Validate()
}

// Apply resolves a requested top: negative means the default, zero stays zero
// and anything above MaxTop is capped.
func (c LimitConfig) Apply(requested int) int {
	switch {
	case requested < 0:
		return c.DefaultTop
	case requested > c.MaxTop:
		return c.MaxTop
	default:
		return requested
	}
}
