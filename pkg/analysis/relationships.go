package analysis

import (
	"github.com/dd0wney/cluso-social/pkg/algorithms"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// RelationshipAnalyzer answers pairwise questions against a store. Every query
// first checks the relevant graph has edges and returns its false or empty
// result otherwise, so callers can skip relations that saw no activity.
type RelationshipAnalyzer struct {
	store *graph.Store
}

// NewRelationshipAnalyzer creates an analyzer over a built store
func NewRelationshipAnalyzer(store *graph.Store) *RelationshipAnalyzer {
	return &RelationshipAnalyzer{store: store}
}

// collapsed returns the relation's collapsed graph, or nil when it has no edges
func (r *RelationshipAnalyzer) collapsed(op string, rel graph.Relation) (*graph.Digraph, error) {
	g, err := r.store.Collapsed(rel)
	if err != nil {
		return nil, NewError(op).Cause(err).Context("relation %d", int(rel)).Err()
	}
	if g.Empty() {
		return nil, nil
	}
	return g, nil
}

func (r *RelationshipAnalyzer) resolve(op string, refs ...social.Ref) ([]*social.User, error) {
	users := make([]*social.User, len(refs))
	for i, ref := range refs {
		u, err := r.store.Lookup(ref)
		if err != nil {
			return nil, NewError(op).Cause(err).Context("resolve %s", ref).Err()
		}
		users[i] = u
	}
	return users, nil
}

// Follows reports whether a follows b directly
func (r *RelationshipAnalyzer) Follows(a, b social.Ref) (bool, error) {
	g, err := r.collapsed("Follows", graph.Connections)
	if err != nil || g == nil {
		return false, err
	}
	users, err := r.resolve("Follows", a, b)
	if err != nil {
		return false, err
	}
	return g.HasEdge(users[0].ID, users[1].ID), nil
}

// Direct returns the payloads of the a->b edge in rel when b is reachable from a
// and the shortest path between them has length one. A longer path yields nil
// even though a path exists.
func (r *RelationshipAnalyzer) Direct(rel graph.Relation, a, b social.Ref) ([]social.Interaction, error) {
	g, err := r.collapsed("Direct", rel)
	if err != nil || g == nil {
		return nil, err
	}
	users, err := r.resolve("Direct", a, b)
	if err != nil {
		return nil, err
	}
	from, to := users[0].ID, users[1].ID

	length, reachable := algorithms.ShortestPathLength(g, from, to)
	if !reachable || length != 1 {
		return nil, nil
	}
	edge, ok := g.Edge(from, to)
	if !ok {
		return nil, nil
	}
	return edge.Payloads, nil
}

// typed narrows interaction payloads to one concrete type
func typed[T social.Interaction](items []social.Interaction) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if v, ok := it.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Reshared returns every reshare a made of b's posts, provided a reshared b directly
func (r *RelationshipAnalyzer) Reshared(a, b social.Ref) ([]*social.Reshare, error) {
	items, err := r.Direct(graph.Reshares, a, b)
	return typed[*social.Reshare](items), err
}

// Mentioned returns every mention of b made by a, provided a mentioned b directly
func (r *RelationshipAnalyzer) Mentioned(a, b social.Ref) ([]*social.Mention, error) {
	items, err := r.Direct(graph.Mentions, a, b)
	return typed[*social.Mention](items), err
}

// Favored returns every like a gave b's posts, provided a liked b directly
func (r *RelationshipAnalyzer) Favored(a, b social.Ref) ([]*social.Favorite, error) {
	items, err := r.Direct(graph.Favorites, a, b)
	return typed[*social.Favorite](items), err
}

// Commented returns every comment a left on b's posts, provided a commented on b directly
func (r *RelationshipAnalyzer) Commented(a, b social.Ref) ([]*social.Comment, error) {
	items, err := r.Direct(graph.Comments, a, b)
	return typed[*social.Comment](items), err
}

func (r *RelationshipAnalyzer) common(op string, rel graph.Relation, dir algorithms.NeighborDirection, a, b social.Ref) ([]*social.User, error) {
	g, err := r.collapsed(op, rel)
	if err != nil || g == nil {
		return nil, err
	}
	users, err := r.resolve(op, a, b)
	if err != nil {
		return nil, err
	}
	return usersOf(g, algorithms.CommonNeighbors(g, users[0].ID, users[1].ID, dir)), nil
}

// CommonFriends returns the accounts both a and b follow
func (r *RelationshipAnalyzer) CommonFriends(a, b social.Ref) ([]*social.User, error) {
	return r.common("CommonFriends", graph.Connections, algorithms.DirectionOut, a, b)
}

// CommonFollowers returns the accounts following both a and b
func (r *RelationshipAnalyzer) CommonFollowers(a, b social.Ref) ([]*social.User, error) {
	return r.common("CommonFollowers", graph.Connections, algorithms.DirectionIn, a, b)
}

// CommonNodes returns the third parties both a and b point at in rel, e.g. the
// authors both reshared.
func (r *RelationshipAnalyzer) CommonNodes(rel graph.Relation, a, b social.Ref) ([]*social.User, error) {
	return r.common("CommonNodes", rel, algorithms.DirectionOut, a, b)
}

// AllFromSource returns the payloads of every user->src interaction in rel, in the
// order they were recorded. Unlike Direct it reads the multigraph edges themselves.
func (r *RelationshipAnalyzer) AllFromSource(rel graph.Relation, user, src social.Ref) ([]social.Interaction, error) {
	g, err := r.collapsed("AllFromSource", rel)
	if err != nil || g == nil {
		return nil, err
	}
	users, err := r.resolve("AllFromSource", user, src)
	if err != nil {
		return nil, err
	}
	multi, err := r.store.Graph(rel)
	if err != nil {
		return nil, NewError("AllFromSource").Relation(rel).Cause(err).Err()
	}

	edges := multi.EdgesBetween(users[0].ID, users[1].ID)
	if len(edges) == 0 {
		return nil, nil
	}
	items := make([]social.Interaction, 0, len(edges))
	for _, e := range edges {
		if e.Payload != nil {
			items = append(items, e.Payload)
		}
	}
	return items, nil
}

// AllResharesFromSource returns the reshares user made of src's posts
func (r *RelationshipAnalyzer) AllResharesFromSource(user, src social.Ref) ([]*social.Reshare, error) {
	items, err := r.AllFromSource(graph.Reshares, user, src)
	return typed[*social.Reshare](items), err
}

// AllMentionsFromSource returns the mentions of src made by user
func (r *RelationshipAnalyzer) AllMentionsFromSource(user, src social.Ref) ([]*social.Mention, error) {
	items, err := r.AllFromSource(graph.Mentions, user, src)
	return typed[*social.Mention](items), err
}

// AllFavoritesFromSource returns the likes user gave src's posts
func (r *RelationshipAnalyzer) AllFavoritesFromSource(user, src social.Ref) ([]*social.Favorite, error) {
	items, err := r.AllFromSource(graph.Favorites, user, src)
	return typed[*social.Favorite](items), err
}

// AllCommentsFromSource returns the comments user left on src's posts
func (r *RelationshipAnalyzer) AllCommentsFromSource(user, src social.Ref) ([]*social.Comment, error) {
	items, err := r.AllFromSource(graph.Comments, user, src)
	return typed[*social.Comment](items), err
}

// ShortestPaths enumerates every shortest path from a to b in rel. It returns nil
// when the graph has no edges or b is unreachable.
func (r *RelationshipAnalyzer) ShortestPaths(rel graph.Relation, a, b social.Ref) ([][]*social.User, error) {
	g, err := r.collapsed("ShortestPaths", rel)
	if err != nil || g == nil {
		return nil, err
	}
	users, err := r.resolve("ShortestPaths", a, b)
	if err != nil {
		return nil, err
	}

	paths := algorithms.AllShortestPaths(g, users[0].ID, users[1].ID)
	if len(paths) == 0 {
		return nil, nil
	}
	out := make([][]*social.User, len(paths))
	for i, p := range paths {
		out[i] = usersOf(g, p)
	}
	return out, nil
}

func usersOf(g *graph.Digraph, ids []int64) []*social.User {
	if len(ids) == 0 {
		return nil
	}
	users := make([]*social.User, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.Node(id); ok {
			users = append(users, n.User)
		}
	}
	return users
}
