package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/provider"
	"github.com/dd0wney/cluso-social/pkg/social"
)

var epoch = time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)

// buildStore resolves the seed IDs against p
func buildStore(t *testing.T, p social.ActivityProvider, seeds ...int64) *graph.Store {
	t.Helper()
	ids := make([]social.Identifier, len(seeds))
	for i, s := range seeds {
		ids[i] = social.IDKey(s)
	}
	store, err := graph.Build(context.Background(), p, social.NamespaceID, ids, graph.BuildOptions{})
	require.NoError(t, err)
	return store
}

// runAnalyzer builds a store and runs the full analysis over it
func runAnalyzer(t *testing.T, p social.ActivityProvider, seeds ...int64) *Analyzer {
	t.Helper()
	a := New(buildStore(t, p, seeds...), nil, DefaultOptions())
	require.NoError(t, a.Run(context.Background()))
	return a
}

func users(p *provider.Memory, n int) *provider.Memory {
	names := []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi"}
	for i := 1; i <= n; i++ {
		p.AddUser(int64(i), names[(i-1)%len(names)])
	}
	return p
}

// bridgedTriangles is a reciprocal follow triangle 1-2-3, a bridge 3->4 and a
// follow cycle 4->5->6->4
func bridgedTriangles() *provider.Memory {
	return users(provider.NewMemory(), 6).
		Follow(1, 2).Follow(2, 1).
		Follow(2, 3).Follow(3, 2).
		Follow(1, 3).Follow(3, 1).
		Follow(3, 4).
		Follow(4, 5).Follow(5, 6).Follow(6, 4)
}

func ids(us []*social.User) []int64 {
	out := make([]int64, len(us))
	for i, u := range us {
		out[i] = u.ID
	}
	return out
}

func rankedIDs(rs []RankedUser) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.User.ID
	}
	return out
}

func warningsFor(a *Analyzer, op string) []Warning {
	var out []Warning
	for _, w := range a.Session().Warnings() {
		if w.Op == op {
			out = append(out, w)
		}
	}
	return out
}
