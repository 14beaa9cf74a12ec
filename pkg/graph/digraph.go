package graph

import (
	"github.com/dd0wney/cluso-social/pkg/social"
)

// Node is a user in a collapsed graph together with the attributes written by the
// metric engine and the community detector.
type Node struct {
	User  *social.User
	Index int

	Centrality  float64
	Betweenness float64
	Eigenvector float64
	HasMetrics  bool

	Community    int
	HasCommunity bool
}

// ID returns the user ID of the node
func (n *Node) ID() int64 {
	return n.User.ID
}

// Edge is the single collapsed edge of an ordered pair
type Edge struct {
	FromNodeID int64
	ToNodeID   int64
	Weight     float64
	Payloads   []social.Interaction
}

// Digraph is a simple directed graph with weighted edges. It is the form metric and
// community algorithms operate on. Nodes and edges iterate in insertion order.
type Digraph struct {
	relation Relation

	nodes    []*Node
	index    map[int64]*Node
	edges    []*Edge
	pairs    map[[2]int64]*Edge
	outgoing map[int64][]*Edge
	incoming map[int64][]*Edge
}

// NewDigraph creates an empty collapsed graph
func NewDigraph(rel Relation) *Digraph {
	return &Digraph{
		relation: rel,
		index:    make(map[int64]*Node),
		pairs:    make(map[[2]int64]*Edge),
		outgoing: make(map[int64][]*Edge),
		incoming: make(map[int64][]*Edge),
	}
}

// Relation returns the relation this graph models
func (d *Digraph) Relation() Relation {
	return d.relation
}

// AddNode returns the node for u, creating it if needed
func (d *Digraph) AddNode(u *social.User) *Node {
	if n, ok := d.index[u.ID]; ok {
		return n
	}
	n := &Node{User: u, Index: len(d.nodes)}
	d.nodes = append(d.nodes, n)
	d.index[u.ID] = n
	return n
}

// AddEdge adds weight to from->to, creating the edge and endpoints when missing.
// A nil payload only adds weight. Self-loops are ignored.
func (d *Digraph) AddEdge(from, to *social.User, weight float64, payload social.Interaction) *Edge {
	if from.ID == to.ID {
		return nil
	}
	d.AddNode(from)
	d.AddNode(to)

	key := [2]int64{from.ID, to.ID}
	e, ok := d.pairs[key]
	if !ok {
		e = &Edge{FromNodeID: from.ID, ToNodeID: to.ID}
		d.pairs[key] = e
		d.edges = append(d.edges, e)
		d.outgoing[from.ID] = append(d.outgoing[from.ID], e)
		d.incoming[to.ID] = append(d.incoming[to.ID], e)
	}
	e.Weight += weight
	if payload != nil {
		e.Payloads = append(e.Payloads, payload)
	}
	return e
}

// Node returns the node for a user ID
func (d *Digraph) Node(id int64) (*Node, bool) {
	n, ok := d.index[id]
	return n, ok
}

// HasNode reports whether id is a node
func (d *Digraph) HasNode(id int64) bool {
	_, ok := d.index[id]
	return ok
}

// Nodes returns nodes in insertion order
func (d *Digraph) Nodes() []*Node {
	return d.nodes
}

// NodeIDs returns user IDs in insertion order
func (d *Digraph) NodeIDs() []int64 {
	ids := make([]int64, len(d.nodes))
	for i, n := range d.nodes {
		ids[i] = n.User.ID
	}
	return ids
}

// NodeCount returns the number of nodes
func (d *Digraph) NodeCount() int {
	return len(d.nodes)
}

// EdgeCount returns the number of collapsed edges
func (d *Digraph) EdgeCount() int {
	return len(d.edges)
}

// Empty reports whether the graph has no edges. Seed-only graphs are empty.
func (d *Digraph) Empty() bool {
	return len(d.edges) == 0
}

// Edges returns every edge in insertion order
func (d *Digraph) Edges() []*Edge {
	return d.edges
}

// Edge returns the collapsed edge from->to
func (d *Digraph) Edge(from, to int64) (*Edge, bool) {
	e, ok := d.pairs[[2]int64{from, to}]
	return e, ok
}

// HasEdge reports whether from->to exists
func (d *Digraph) HasEdge(from, to int64) bool {
	_, ok := d.pairs[[2]int64{from, to}]
	return ok
}

// OutgoingEdges returns edges leaving id in insertion order
func (d *Digraph) OutgoingEdges(id int64) []*Edge {
	return d.outgoing[id]
}

// IncomingEdges returns edges entering id in insertion order
func (d *Digraph) IncomingEdges(id int64) []*Edge {
	return d.incoming[id]
}

// Successors returns the IDs id points to
func (d *Digraph) Successors(id int64) []int64 {
	out := d.outgoing[id]
	ids := make([]int64, len(out))
	for i, e := range out {
		ids[i] = e.ToNodeID
	}
	return ids
}

// Predecessors returns the IDs pointing to id
func (d *Digraph) Predecessors(id int64) []int64 {
	in := d.incoming[id]
	ids := make([]int64, len(in))
	for i, e := range in {
		ids[i] = e.FromNodeID
	}
	return ids
}

// TotalWeight returns the sum of edge weights
func (d *Digraph) TotalWeight() float64 {
	total := 0.0
	for _, e := range d.edges {
		total += e.Weight
	}
	return total
}
