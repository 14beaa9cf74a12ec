// Package export serialises analysed relation graphs to a node/link structure
// and writes it to local files or S3.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
	"github.com/dd0wney/cluso-social/pkg/visualization"
)

// Node is one exported user. Metric fields are zero until the analysis ran.
type Node struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Group       int      `json:"group"`
	Degree      float64  `json:"degree"`
	Betweenness float64  `json:"betweenness"`
	Eigenvector float64  `json:"eigenvector"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
}

// ResharePayload identifies the reshared post and the resharer's copy
type ResharePayload struct {
	OriginalPost int64 `json:"original_post"`
	ResharedPost int64 `json:"reshared_post"`
}

// PostPayload identifies the post behind a mention or a favorite
type PostPayload struct {
	Post int64  `json:"post"`
	Text string `json:"text,omitempty"`
}

// CommentPayload is one comment on the target's post
type CommentPayload struct {
	Post      int64     `json:"post"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Link is one collapsed edge. Source and Target index the Nodes slice; only the
// payload list of the exported relation is filled.
type Link struct {
	Source    int              `json:"source"`
	Target    int              `json:"target"`
	Weight    float64          `json:"weight"`
	Reshares  []ResharePayload `json:"reshares,omitempty"`
	Mentions  []PostPayload    `json:"mentions,omitempty"`
	Favorites []PostPayload    `json:"favorites,omitempty"`
	Comments  []CommentPayload `json:"comments,omitempty"`
}

// NodeLink is the portable form of one relation graph
type NodeLink struct {
	Relation string `json:"relation"`
	Nodes    []Node `json:"nodes"`
	Links    []Link `json:"links"`
}

// Options configures an export
type Options struct {
	// Layout attaches x/y coordinates to nodes when set
	Layout visualization.Layout
}

// Export serialises the collapsed graph of rel. It returns nil for a graph
// without edges so callers can skip writing it.
func Export(store *graph.Store, rel graph.Relation, opts Options) (*NodeLink, error) {
	g, err := store.Collapsed(rel)
	if err != nil {
		return nil, err
	}
	return ExportGraph(g, opts)
}

// ExportGraph serialises a collapsed graph, nil when it has no edges
func ExportGraph(g *graph.Digraph, opts Options) (*NodeLink, error) {
	if g.Empty() {
		return nil, nil
	}

	var positions map[int64]visualization.Position
	if opts.Layout != nil {
		var err error
		if positions, err = opts.Layout.ComputeLayout(g); err != nil {
			return nil, fmt.Errorf("compute layout: %w", err)
		}
	}

	nl := &NodeLink{
		Relation: g.Relation().String(),
		Nodes:    make([]Node, 0, g.NodeCount()),
		Links:    make([]Link, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		node := Node{
			ID:          n.ID(),
			Name:        n.User.Name(),
			Degree:      n.Centrality,
			Betweenness: n.Betweenness,
			Eigenvector: n.Eigenvector,
		}
		if n.HasCommunity {
			node.Group = n.Community
		}
		if pos, ok := positions[n.ID()]; ok {
			x, y := pos.X, pos.Y
			node.X, node.Y = &x, &y
		}
		nl.Nodes = append(nl.Nodes, node)
	}

	for _, e := range g.Edges() {
		from, _ := g.Node(e.FromNodeID)
		to, _ := g.Node(e.ToNodeID)
		link := Link{Source: from.Index, Target: to.Index, Weight: e.Weight}
		for _, p := range e.Payloads {
			addPayload(&link, p)
		}
		nl.Links = append(nl.Links, link)
	}
	return nl, nil
}

func addPayload(link *Link, p social.Interaction) {
	switch v := p.(type) {
	case *social.Reshare:
		rp := ResharePayload{OriginalPost: v.PostID()}
		if v.ResharedPost != nil {
			rp.ResharedPost = v.ResharedPost.ID
		}
		link.Reshares = append(link.Reshares, rp)
	case *social.Mention:
		link.Mentions = append(link.Mentions, PostPayload{Post: v.PostID(), Text: postText(v.Post)})
	case *social.Favorite:
		link.Favorites = append(link.Favorites, PostPayload{Post: v.PostID(), Text: postText(v.Post)})
	case *social.Comment:
		link.Comments = append(link.Comments, CommentPayload{Post: v.PostID(), Text: v.Text, CreatedAt: v.CreatedAt})
	}
}

func postText(p *social.Post) string {
	if p == nil {
		return ""
	}
	return p.Text
}

// Marshal encodes the export as JSON
func (nl *NodeLink) Marshal() ([]byte, error) {
	return json.Marshal(nl)
}

// Decode reads an export back and checks that every link references a node
func Decode(data []byte) (*NodeLink, error) {
	var nl NodeLink
	if err := json.Unmarshal(data, &nl); err != nil {
		return nil, fmt.Errorf("decode node/link export: %w", err)
	}
	for i, l := range nl.Links {
		if l.Source < 0 || l.Source >= len(nl.Nodes) || l.Target < 0 || l.Target >= len(nl.Nodes) {
			return nil, fmt.Errorf("link %d references node %d->%d outside %d nodes", i, l.Source, l.Target, len(nl.Nodes))
		}
	}
	return &nl, nil
}

// TotalWeight returns the sum of link weights
func (nl *NodeLink) TotalWeight() float64 {
	total := 0.0
	for _, l := range nl.Links {
		total += l.Weight
	}
	return total
}
