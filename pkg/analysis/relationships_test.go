package analysis

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/provider"
	"github.com/dd0wney/cluso-social/pkg/social"
)

func TestFollows_Scenario(t *testing.T) {
	p := users(provider.NewMemory(), 3).Follow(1, 2).Follow(2, 1).Follow(1, 3)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1, 2, 3))

	tests := []struct {
		a, b int64
		want bool
	}{
		{1, 2, true},
		{2, 1, true},
		{1, 3, true},
		{3, 1, false},
		{2, 3, false},
	}
	for _, tt := range tests {
		got, err := r.Follows(social.RefID(tt.a), social.RefID(tt.b))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "follows(%d,%d)", tt.a, tt.b)
	}
}

func TestFollows_IndirectPathIsNotFollowing(t *testing.T) {
	p := users(provider.NewMemory(), 3).Follow(1, 2).Follow(2, 3)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1, 2, 3))

	paths, err := r.ShortestPaths(graph.Connections, social.RefID(1), social.RefID(3))
	require.NoError(t, err)
	require.Len(t, paths, 1)

	follows, err := r.Follows(social.RefID(1), social.RefID(3))
	require.NoError(t, err)
	assert.False(t, follows)
}

func TestMentioned_DirectEdgeOnly(t *testing.T) {
	p := users(provider.NewMemory(), 3).
		AddPost(10, 1, "hi @bob", epoch).
		AddPost(20, 2, "hi @carol", epoch).
		Mention(1, 2, 10).
		Mention(2, 3, 20)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1, 2))

	direct, err := r.Mentioned(social.RefID(1), social.RefID(2))
	require.NoError(t, err)
	require.Len(t, direct, 1)
	assert.Equal(t, int64(10), direct[0].Post.ID)

	indirect, err := r.Mentioned(social.RefID(1), social.RefID(3))
	require.NoError(t, err)
	assert.Nil(t, indirect)

	self, err := r.Mentioned(social.RefID(1), social.RefID(1))
	require.NoError(t, err)
	assert.Nil(t, self)
}

func TestReshared_TwoPosts(t *testing.T) {
	p := users(provider.NewMemory(), 2).
		AddPost(100, 2, "first", epoch).
		AddPost(101, 2, "second", epoch.Add(time.Hour)).
		AddPost(200, 1, "RT first", epoch.Add(2*time.Hour)).
		AddPost(201, 1, "RT second", epoch.Add(3*time.Hour)).
		Reshare(1, 200, 100).
		Reshare(1, 201, 101)
	store := buildStore(t, p, 1)
	r := NewRelationshipAnalyzer(store)

	reshares, err := r.Reshared(social.RefID(1), social.RefID(2))
	require.NoError(t, err)
	require.Len(t, reshares, 2)
	assert.NotEqual(t, reshares[0].OriginalPost.ID, reshares[1].OriginalPost.ID)
	for _, rs := range reshares {
		assert.NotNil(t, rs.ResharedPost)
		assert.Equal(t, int64(2), rs.OriginalPost.Author.ID)
	}

	g, err := store.Collapsed(graph.Reshares)
	require.NoError(t, err)
	edge, ok := g.Edge(1, 2)
	require.True(t, ok)
	assert.Equal(t, 2.0, edge.Weight)

	back, err := r.Reshared(social.RefID(2), social.RefID(1))
	require.NoError(t, err)
	assert.Empty(t, back)
}

func TestCommonResharesFromSource(t *testing.T) {
	p := users(provider.NewMemory(), 3).
		AddPost(300, 3, "carol one", epoch).
		AddPost(301, 3, "carol two", epoch).
		AddPost(100, 1, "RT carol one", epoch).
		AddPost(200, 2, "RT carol two", epoch).
		Reshare(1, 100, 300).
		Reshare(2, 200, 301)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1, 2))

	common, err := r.CommonNodes(graph.Reshares, social.RefID(1), social.RefID(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(common))

	fromA, err := r.AllResharesFromSource(social.RefID(1), social.RefID(3))
	require.NoError(t, err)
	require.Len(t, fromA, 1)
	assert.Equal(t, int64(300), fromA[0].OriginalPost.ID)
	assert.Equal(t, int64(1), fromA[0].Resharer.ID)
}

func TestCommonFriendsAndFollowers(t *testing.T) {
	p := users(provider.NewMemory(), 5).
		Follow(1, 3).Follow(2, 3).
		Follow(1, 4).
		Follow(5, 1).Follow(5, 2)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1, 2))

	friends, err := r.CommonFriends(social.RefID(1), social.RefID(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(friends))

	followers, err := r.CommonFollowers(social.RefID(1), social.RefID(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(followers))
}

func TestShortestPaths_AllEnumerated(t *testing.T) {
	p := users(provider.NewMemory(), 4).
		Follow(1, 2).Follow(1, 3).Follow(2, 4).Follow(3, 4)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1, 2, 3, 4))

	paths, err := r.ShortestPaths(graph.Connections, social.RefID(1), social.RefID(4))
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, []int64{1, 2, 4}, ids(paths[0]))
	assert.Equal(t, []int64{1, 3, 4}, ids(paths[1]))

	none, err := r.ShortestPaths(graph.Connections, social.RefID(4), social.RefID(1))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRelationships_EmptyGraphSentinels(t *testing.T) {
	p := users(provider.NewMemory(), 2)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1, 2))
	a, b := social.RefID(1), social.RefID(2)

	follows, err := r.Follows(a, b)
	assert.NoError(t, err)
	assert.False(t, follows)

	reshares, err := r.Reshared(a, b)
	assert.NoError(t, err)
	assert.Nil(t, reshares)

	comments, err := r.Commented(a, b)
	assert.NoError(t, err)
	assert.Nil(t, comments)

	common, err := r.CommonFriends(a, b)
	assert.NoError(t, err)
	assert.Nil(t, common)

	favorites, err := r.AllFavoritesFromSource(a, b)
	assert.NoError(t, err)
	assert.Nil(t, favorites)

	paths, err := r.ShortestPaths(graph.Mentions, a, b)
	assert.NoError(t, err)
	assert.Nil(t, paths)
}

func TestRelationships_MissingIdentifier(t *testing.T) {
	p := users(provider.NewMemory(), 2).Follow(1, 2)
	r := NewRelationshipAnalyzer(buildStore(t, p, 1))

	_, err := r.Follows(social.RefID(1), social.RefID(99))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingIdentifier)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Follows", aerr.Op)
}

// TestDirectEdgeProperty checks that follows and mentioned agree with the
// existence of a direct edge for arbitrary graphs, whatever longer paths exist.
func TestDirectEdgeProperty(t *testing.T) {
	const n = 6

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("predicates hold exactly for direct edges", prop.ForAll(
		func(endpoints []int) bool {
			p := users(provider.NewMemory(), n)
			direct := make(map[[2]int64]bool)
			for i := 0; i+1 < len(endpoints); i += 2 {
				from, to := int64(endpoints[i]), int64(endpoints[i+1])
				post := int64(1000 + i)
				p.Follow(from, to).
					AddPost(post, from, "post", epoch).
					Mention(from, to, post)
				if from != to {
					direct[[2]int64{from, to}] = true
				}
			}

			seeds := make([]int64, n)
			for i := range seeds {
				seeds[i] = int64(i + 1)
			}
			r := NewRelationshipAnalyzer(buildStore(t, p, seeds...))

			for a := int64(1); a <= n; a++ {
				for b := int64(1); b <= n; b++ {
					follows, err := r.Follows(social.RefID(a), social.RefID(b))
					if err != nil || follows != direct[[2]int64{a, b}] {
						return false
					}
					mentions, err := r.Mentioned(social.RefID(a), social.RefID(b))
					if err != nil || (len(mentions) > 0) != direct[[2]int64{a, b}] {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, n)),
	))

	properties.TestingRun(t)
}
