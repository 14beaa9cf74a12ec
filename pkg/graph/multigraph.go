package graph

import (
	"github.com/dd0wney/cluso-social/pkg/social"
)

// MultiEdge is one interaction between two accounts. Connections edges carry no payload.
type MultiEdge struct {
	ID         uint64
	FromNodeID int64
	ToNodeID   int64
	Payload    social.Interaction
}

// Multigraph is a directed graph of users that permits parallel edges, one per
// interaction. A simple multigraph (the follow graph) drops duplicate pairs instead.
// Node iteration follows insertion order.
type Multigraph struct {
	relation Relation
	simple   bool

	order    []int64
	nodes    map[int64]*social.User
	edges    []*MultiEdge
	outgoing map[int64][]*MultiEdge
	incoming map[int64][]*MultiEdge
	nextID   uint64
}

// NewMultigraph creates an empty graph for the relation
func NewMultigraph(rel Relation) *Multigraph {
	return &Multigraph{
		relation: rel,
		simple:   !rel.Multi(),
		nodes:    make(map[int64]*social.User),
		outgoing: make(map[int64][]*MultiEdge),
		incoming: make(map[int64][]*MultiEdge),
		nextID:   1,
	}
}

// Relation returns the relation this graph models
func (g *Multigraph) Relation() Relation {
	return g.relation
}

// AddNode adds u if it is not present yet and reports whether it was added
func (g *Multigraph) AddNode(u *social.User) bool {
	if _, exists := g.nodes[u.ID]; exists {
		return false
	}
	g.nodes[u.ID] = u
	g.order = append(g.order, u.ID)
	return true
}

// AddEdge adds from->to, adding missing endpoints. Self-loops are rejected, and so are
// repeated pairs in a simple graph; in both cases nil is returned.
func (g *Multigraph) AddEdge(from, to *social.User, payload social.Interaction) *MultiEdge {
	if from.ID == to.ID {
		return nil
	}
	if g.simple && g.HasEdge(from.ID, to.ID) {
		return nil
	}

	g.AddNode(from)
	g.AddNode(to)

	edge := &MultiEdge{
		ID:         g.nextID,
		FromNodeID: from.ID,
		ToNodeID:   to.ID,
		Payload:    payload,
	}
	g.nextID++

	g.edges = append(g.edges, edge)
	g.outgoing[from.ID] = append(g.outgoing[from.ID], edge)
	g.incoming[to.ID] = append(g.incoming[to.ID], edge)
	return edge
}

// HasNode reports whether a user with the ID is a node
func (g *Multigraph) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the user stored under id
func (g *Multigraph) Node(id int64) (*social.User, bool) {
	u, ok := g.nodes[id]
	return u, ok
}

// Nodes returns users in insertion order
func (g *Multigraph) Nodes() []*social.User {
	users := make([]*social.User, 0, len(g.order))
	for _, id := range g.order {
		users = append(users, g.nodes[id])
	}
	return users
}

// NodeCount returns the number of nodes
func (g *Multigraph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges, counting parallel edges separately
func (g *Multigraph) EdgeCount() int {
	return len(g.edges)
}

// Edges returns every edge in insertion order
func (g *Multigraph) Edges() []*MultiEdge {
	return g.edges
}

// HasEdge reports whether at least one edge from->to exists
func (g *Multigraph) HasEdge(from, to int64) bool {
	for _, e := range g.outgoing[from] {
		if e.ToNodeID == to {
			return true
		}
	}
	return false
}

// EdgesBetween returns all parallel edges from->to in insertion order
func (g *Multigraph) EdgesBetween(from, to int64) []*MultiEdge {
	var result []*MultiEdge
	for _, e := range g.outgoing[from] {
		if e.ToNodeID == to {
			result = append(result, e)
		}
	}
	return result
}

// OutgoingEdges returns edges leaving id
func (g *Multigraph) OutgoingEdges(id int64) []*MultiEdge {
	return g.outgoing[id]
}

// IncomingEdges returns edges entering id
func (g *Multigraph) IncomingEdges(id int64) []*MultiEdge {
	return g.incoming[id]
}

// Collapse merges parallel edges into a simple Digraph. Each collapsed edge carries
// the number of merged edges as its weight and their payloads in insertion order.
func (g *Multigraph) Collapse() *Digraph {
	d := NewDigraph(g.relation)
	for _, id := range g.order {
		d.AddNode(g.nodes[id])
	}
	for _, e := range g.edges {
		d.AddEdge(g.nodes[e.FromNodeID], g.nodes[e.ToNodeID], 1, e.Payload)
	}
	return d
}
