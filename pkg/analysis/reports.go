package analysis

import (
	"strings"

	"github.com/dd0wney/cluso-social/pkg/algorithms"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// InteractionCount counts the interactions between a user and one other seed
type InteractionCount struct {
	User     *social.User
	Outgoing int
	Incoming int
}

// UserReport describes one seed: its metrics, how it is connected to the other
// seeds and the timeline posts matching the watched keywords.
type UserReport struct {
	User     *social.User
	Measures Measures
	// Follows and FollowedBy list other seeds only
	Follows    []*social.User
	FollowedBy []*social.User
	// Interactions lists, per interaction relation, the seeds with a non-zero count
	Interactions  map[graph.Relation][]InteractionCount
	CriticalPosts []*social.Post
}

// UserReport builds the report for one user. Keywords match post text
// case-insensitively; no keywords means no critical posts.
func (a *Analyzer) UserReport(ref social.Ref, keywords []string) (*UserReport, error) {
	measures, err := a.Measures(ref)
	if err != nil {
		return nil, err
	}
	u, err := a.store.Lookup(ref)
	if err != nil {
		return nil, NewError("UserReport").Cause(err).Err()
	}

	report := &UserReport{
		User:          u,
		Measures:      measures,
		Interactions:  make(map[graph.Relation][]InteractionCount, len(graph.InteractionRelations)),
		CriticalPosts: matchPosts(u.Timeline(), keywords),
	}

	connections, err := a.store.Graph(graph.Connections)
	if err != nil {
		return nil, NewError("UserReport").Relation(graph.Connections).Cause(err).Err()
	}
	for _, target := range a.store.Seeds() {
		if target.ID == u.ID {
			continue
		}
		if connections.HasEdge(u.ID, target.ID) {
			report.Follows = append(report.Follows, target)
		}
		if connections.HasEdge(target.ID, u.ID) {
			report.FollowedBy = append(report.FollowedBy, target)
		}
	}

	for _, rel := range graph.InteractionRelations {
		g, err := a.store.Graph(rel)
		if err != nil {
			return nil, NewError("UserReport").Relation(rel).Cause(err).Err()
		}
		for _, target := range a.store.Seeds() {
			if target.ID == u.ID {
				continue
			}
			count := InteractionCount{
				User:     target,
				Outgoing: len(g.EdgesBetween(u.ID, target.ID)),
				Incoming: len(g.EdgesBetween(target.ID, u.ID)),
			}
			if count.Outgoing > 0 || count.Incoming > 0 {
				report.Interactions[rel] = append(report.Interactions[rel], count)
			}
		}
	}
	return report, nil
}

func matchPosts(posts []*social.Post, keywords []string) []*social.Post {
	var lowered []string
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	if len(lowered) == 0 {
		return nil
	}

	var matched []*social.Post
	for _, p := range posts {
		text := strings.ToLower(p.Text)
		for _, k := range lowered {
			if strings.Contains(text, k) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

// Connection classifies the follow relation between two users
type Connection int

const (
	ConnectionNone Connection = iota
	ConnectionUnidirectional
	ConnectionBidirectional
)

func (c Connection) String() string {
	switch c {
	case ConnectionBidirectional:
		return "BIDIRECTIONAL"
	case ConnectionUnidirectional:
		return "UNIDIRECTIONAL"
	default:
		return "NONE"
	}
}

// RelationshipOptions selects the sections of a relationship report
type RelationshipOptions struct {
	Connections bool
	Reshares    bool
	Mentions    bool
	Favorites   bool
	Comments    bool
}

// AllSections enables every section
func AllSections() RelationshipOptions {
	return RelationshipOptions{Connections: true, Reshares: true, Mentions: true, Favorites: true, Comments: true}
}

// Enabled reports whether the section for rel is on
func (o RelationshipOptions) Enabled(rel graph.Relation) bool {
	switch rel {
	case graph.Connections:
		return o.Connections
	case graph.Reshares:
		return o.Reshares
	case graph.Mentions:
		return o.Mentions
	case graph.Favorites:
		return o.Favorites
	case graph.Comments:
		return o.Comments
	default:
		return false
	}
}

// DirectInteractions holds the payloads of the two direct edges between a pair
type DirectInteractions struct {
	AToB []social.Interaction
	BToA []social.Interaction
}

// SourceInteractions holds one user's payloads toward a shared source
type SourceInteractions struct {
	Source       *social.User
	Interactions []social.Interaction
}

// CommonSources holds, for the third parties both users interacted with, the
// payloads of each side.
type CommonSources struct {
	Sources []*social.User
	A       []SourceInteractions
	B       []SourceInteractions
}

// RelationshipReport describes how two users relate across the five graphs
type RelationshipReport struct {
	A, B    *social.User
	Options RelationshipOptions

	Connection Connection
	// Source and Target are set for a unidirectional connection
	Source *social.User
	Target *social.User

	CommonFriends   []*social.User
	CommonFollowers []*social.User
	// Paths enumerates the shortest follow paths from A to B
	Paths [][]*social.User

	Direct        map[graph.Relation]DirectInteractions
	CommonSources map[graph.Relation]CommonSources
}

// RelationshipReport compares two users over the enabled sections
func (a *Analyzer) RelationshipReport(refA, refB social.Ref, opts RelationshipOptions) (*RelationshipReport, error) {
	r := a.relationships
	users, err := r.resolve("RelationshipReport", refA, refB)
	if err != nil {
		return nil, err
	}
	ua, ub := social.RefUser(users[0]), social.RefUser(users[1])

	report := &RelationshipReport{
		A:             users[0],
		B:             users[1],
		Options:       opts,
		Direct:        make(map[graph.Relation]DirectInteractions),
		CommonSources: make(map[graph.Relation]CommonSources),
	}

	if opts.Connections {
		if err := a.connectionSection(report, ua, ub); err != nil {
			return nil, err
		}
	}

	for _, rel := range graph.InteractionRelations {
		if !opts.Enabled(rel) {
			continue
		}
		if err := a.interactionSection(report, rel, ua, ub); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (a *Analyzer) connectionSection(report *RelationshipReport, ua, ub social.Ref) error {
	r := a.relationships
	ab, err := r.Follows(ua, ub)
	if err != nil {
		return err
	}
	ba, err := r.Follows(ub, ua)
	if err != nil {
		return err
	}
	switch {
	case ab && ba:
		report.Connection = ConnectionBidirectional
	case ab:
		report.Connection = ConnectionUnidirectional
		report.Source, report.Target = report.A, report.B
	case ba:
		report.Connection = ConnectionUnidirectional
		report.Source, report.Target = report.B, report.A
	}

	if report.CommonFriends, err = r.CommonFriends(ua, ub); err != nil {
		return err
	}
	if report.CommonFollowers, err = r.CommonFollowers(ua, ub); err != nil {
		return err
	}
	report.Paths, err = r.ShortestPaths(graph.Connections, ua, ub)
	return err
}

func (a *Analyzer) interactionSection(report *RelationshipReport, rel graph.Relation, ua, ub social.Ref) error {
	r := a.relationships

	ab, err := r.Direct(rel, ua, ub)
	if err != nil {
		return err
	}
	ba, err := r.Direct(rel, ub, ua)
	if err != nil {
		return err
	}
	if len(ab) > 0 || len(ba) > 0 {
		report.Direct[rel] = DirectInteractions{AToB: ab, BToA: ba}
	}

	sources, err := r.CommonNodes(rel, ua, ub)
	if err != nil || len(sources) == 0 {
		return err
	}
	common := CommonSources{Sources: sources}
	for _, src := range sources {
		ref := social.RefUser(src)
		fromA, err := r.AllFromSource(rel, ua, ref)
		if err != nil {
			return err
		}
		fromB, err := r.AllFromSource(rel, ub, ref)
		if err != nil {
			return err
		}
		common.A = append(common.A, SourceInteractions{Source: src, Interactions: fromA})
		common.B = append(common.B, SourceInteractions{Source: src, Interactions: fromB})
	}
	report.CommonSources[rel] = common
	return nil
}

// GraphReport summarises the structure of one relation graph
type GraphReport struct {
	Relation     graph.Relation
	Nodes        int
	Edges        int
	Interactions int

	Density        float64
	TriadicClosure float64

	// Hubs rank by degree centrality, Brokers by betweenness, Influencers by eigenvector
	Hubs        []RankedUser
	Brokers     []RankedUser
	Influencers []RankedUser

	Components     int
	CommunityCount int
	Modularity     float64
	Communities    []*CommunityBreakdown
}

// GraphReport builds the structure report of rel with top-k rankings. Community
// breakdowns use at most top members each; a graph without edges gets none.
func (a *Analyzer) GraphReport(rel graph.Relation, top int) (*GraphReport, error) {
	g, err := a.analysed("GraphReport", rel)
	if err != nil {
		return nil, err
	}
	multi, err := a.store.Graph(rel)
	if err != nil {
		return nil, NewError("GraphReport").Relation(rel).Cause(err).Err()
	}
	metrics := a.metrics[rel]
	communities := a.communities[rel]

	report := &GraphReport{
		Relation:       rel,
		Nodes:          g.NodeCount(),
		Edges:          g.EdgeCount(),
		Interactions:   multi.EdgeCount(),
		Density:        metrics.Density,
		TriadicClosure: metrics.TriadicClosure,
		CommunityCount: communities.Count,
		Modularity:     communities.Modularity,
	}

	if report.Hubs, err = a.TopNodes(rel, Centrality, top); err != nil {
		return nil, err
	}
	if report.Brokers, err = a.TopNodes(rel, Betweenness, top); err != nil {
		return nil, err
	}
	if report.Influencers, err = a.TopNodes(rel, Eigenvector, top); err != nil {
		return nil, err
	}

	if g.Empty() {
		return report, nil
	}
	report.Components = algorithms.ConnectedComponents(g).Count()
	for i, c := range communities.Communities {
		breakdown, err := a.CommunityMetrics(rel, i, min(top, c.Size))
		if err != nil {
			return nil, err
		}
		report.Communities = append(report.Communities, breakdown)
	}
	return report, nil
}
