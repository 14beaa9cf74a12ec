package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-social/pkg/logging"
	"github.com/dd0wney/cluso-social/pkg/metrics"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// BuildOptions configures Build. Both fields are optional.
type BuildOptions struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Store owns the five relation graphs of one analysis run and the identifier registry
// used to resolve users. It is read-only once Build returns.
type Store struct {
	namespace social.Namespace
	seeds     []*social.User

	users   map[int64]*social.User
	handles map[string]*social.User

	graphs    map[Relation]*Multigraph
	collapsed map[Relation]*Digraph
}

func newStore(ns social.Namespace) *Store {
	s := &Store{
		namespace: ns,
		users:     make(map[int64]*social.User),
		handles:   make(map[string]*social.User),
		graphs:    make(map[Relation]*Multigraph, len(Relations)),
		collapsed: make(map[Relation]*Digraph, len(Relations)),
	}
	for _, rel := range Relations {
		s.graphs[rel] = NewMultigraph(rel)
	}
	return s
}

// Build resolves every seed through the provider and constructs the relation graphs.
// Seeds become nodes of every graph before any edge is added, so per-user queries
// never miss a seed node. A provider error for any seed aborts the build.
func Build(ctx context.Context, provider social.ActivityProvider, ns social.Namespace, seeds []social.Identifier, opts BuildOptions) (*Store, error) {
	start := time.Now()
	s, err := build(ctx, provider, ns, seeds, opts)
	if opts.Metrics == nil {
		return s, err
	}
	if err != nil {
		opts.Metrics.RecordBuild("error", time.Since(start))
		return nil, err
	}
	opts.Metrics.RecordBuild("success", time.Since(start))
	for _, rel := range Relations {
		opts.Metrics.SetGraphSize(rel.String(), s.collapsed[rel].NodeCount(), s.collapsed[rel].EdgeCount(), s.graphs[rel].EdgeCount())
	}
	return s, nil
}

func build(ctx context.Context, provider social.ActivityProvider, ns social.Namespace, seeds []social.Identifier, opts BuildOptions) (*Store, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("graph_store"))

	timer := logging.StartTimer(logger, "graph store built", logging.Count(len(seeds)))
	s := newStore(ns)

	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		activity, err := provider.Activity(ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("resolve seed %s: %w", seed, err)
		}

		user := s.intern(social.NewUser(activity.ID, activity.Handle))
		user.Attach(activity)
		if !s.isSeed(user) {
			s.seeds = append(s.seeds, user)
		}
		// seeds are always reachable under the identifier they were requested by
		if seed.Namespace == social.NamespaceHandle && seed.Handle != "" {
			s.handles[seed.Handle] = user
		}
		logger.Debug("seed resolved", logging.Seed(seed.String()), logging.UserID(user.ID))
	}

	for _, seed := range s.seeds {
		for _, rel := range Relations {
			s.graphs[rel].AddNode(seed)
		}
	}

	for _, seed := range s.seeds {
		s.addConnections(seed)
		s.addReshares(seed)
		s.addMentions(seed)
		s.addFavorites(seed)
		s.addComments(seed)
	}

	s.mapIdentifiers(logger)

	for _, rel := range Relations {
		s.collapsed[rel] = s.graphs[rel].Collapse()
		logger.Debug("graph collapsed",
			logging.Relation(rel.String()),
			logging.Int("nodes", s.collapsed[rel].NodeCount()),
			logging.Int("edges", s.collapsed[rel].EdgeCount()),
			logging.Int("interactions", s.graphs[rel].EdgeCount()))
	}

	timer.End()
	return s, nil
}

// intern returns the canonical user for u's ID, registering u when it is new
func (s *Store) intern(u *social.User) *social.User {
	if u == nil {
		return nil
	}
	if existing, ok := s.users[u.ID]; ok {
		if existing.Handle == "" && u.Handle != "" {
			existing.Handle = u.Handle
		}
		return existing
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) isSeed(u *social.User) bool {
	for _, seed := range s.seeds {
		if seed.ID == u.ID {
			return true
		}
	}
	return false
}

func (s *Store) addConnections(u *social.User) {
	g := s.graphs[Connections]
	for _, f := range u.Followers() {
		g.AddEdge(s.intern(f), u, nil)
	}
	for _, f := range u.Friends() {
		g.AddEdge(u, s.intern(f), nil)
	}
}

func (s *Store) addReshares(u *social.User) {
	g := s.graphs[Reshares]
	for _, r := range u.Reshares() {
		if author := r.Subject(); author != nil {
			g.AddEdge(u, s.intern(author), r)
		}
	}
}

func (s *Store) addMentions(u *social.User) {
	g := s.graphs[Mentions]
	for _, m := range u.Mentions() {
		if m.Mentioned != nil {
			g.AddEdge(u, s.intern(m.Mentioned), m)
		}
	}
}

func (s *Store) addFavorites(u *social.User) {
	g := s.graphs[Favorites]
	for _, f := range u.Favorites() {
		if f.Author != nil {
			g.AddEdge(u, s.intern(f.Author), f)
		}
	}
}

func (s *Store) addComments(u *social.User) {
	g := s.graphs[Comments]
	for _, c := range u.Comments() {
		if author := c.Subject(); author != nil {
			g.AddEdge(u, s.intern(author), c)
		}
	}
}

// mapIdentifiers registers every node under the active namespace so lookups of
// discovered (non-seed) users succeed the same way seed lookups do.
func (s *Store) mapIdentifiers(logger logging.Logger) {
	unnamed := 0
	for _, rel := range Relations {
		for _, u := range s.graphs[rel].Nodes() {
			s.users[u.ID] = u
			if s.namespace != social.NamespaceHandle {
				continue
			}
			if u.Handle == "" {
				unnamed++
				continue
			}
			if _, ok := s.handles[u.Handle]; !ok {
				s.handles[u.Handle] = u
			}
		}
	}
	if unnamed > 0 {
		logger.Warn("nodes without handle are only reachable by id", logging.Count(unnamed))
	}
}

// Namespace returns the identifier namespace of the run
func (s *Store) Namespace() social.Namespace {
	return s.namespace
}

// Seeds returns the resolved seed users in request order
func (s *Store) Seeds() []*social.User {
	return s.seeds
}

// IsSeed reports whether u is one of the analysis targets
func (s *Store) IsSeed(u *social.User) bool {
	return s.isSeed(u)
}

// Relations returns the relations the store holds graphs for, in canonical order
func (s *Store) Relations() []Relation {
	out := make([]Relation, 0, len(s.graphs))
	for _, rel := range Relations {
		if _, ok := s.graphs[rel]; ok {
			out = append(out, rel)
		}
	}
	return out
}

// Graph returns the multigraph for a relation
func (s *Store) Graph(rel Relation) (*Multigraph, error) {
	g, ok := s.graphs[rel]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRelation, int(rel))
	}
	return g, nil
}

// Collapsed returns the collapsed simple graph for a relation
func (s *Store) Collapsed(rel Relation) (*Digraph, error) {
	d, ok := s.collapsed[rel]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRelation, int(rel))
	}
	return d, nil
}

// Users returns the number of registered users
func (s *Store) Users() int {
	return len(s.users)
}

// Lookup resolves a reference to the canonical user registered by the store
func (s *Store) Lookup(ref social.Ref) (*social.User, error) {
	if u, ok := ref.User(); ok {
		if canonical, found := s.users[u.ID]; found {
			return canonical, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingIdentifier, ref)
	}

	id := ref.Identifier()
	switch id.Namespace {
	case social.NamespaceHandle:
		if u, ok := s.handles[id.Handle]; ok {
			return u, nil
		}
	default:
		if u, ok := s.users[id.ID]; ok {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingIdentifier, ref)
}
