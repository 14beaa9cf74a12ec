package graph

import (
	"fmt"
	"strings"
)

// Relation selects one of the five typed graphs kept per analysis run
type Relation int

const (
	// Connections is the follow graph: A->B means A follows B
	Connections Relation = iota
	// Reshares links a resharer to the author of the reshared post
	Reshares
	// Mentions links a user to the accounts mentioned in their posts
	Mentions
	// Favorites links a user to the authors of posts they liked
	Favorites
	// Comments links a user to the authors of posts they commented on
	Comments
)

// Relations lists every relation in table order
var Relations = []Relation{Connections, Reshares, Mentions, Favorites, Comments}

// InteractionRelations lists the four multigraph relations
var InteractionRelations = []Relation{Reshares, Mentions, Favorites, Comments}

var relationNames = map[Relation]string{
	Connections: "connections",
	Reshares:    "reshares",
	Mentions:    "mentions",
	Favorites:   "favorites",
	Comments:    "comments",
}

// String returns the relation's graph name
func (r Relation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return fmt.Sprintf("relation(%d)", int(r))
}

// Valid reports whether r is one of the five known relations
func (r Relation) Valid() bool {
	_, ok := relationNames[r]
	return ok
}

// Multi reports whether the relation allows parallel edges
func (r Relation) Multi() bool {
	return r != Connections
}

// ParseRelation converts a graph name to a Relation
func ParseRelation(s string) (Relation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for rel, n := range relationNames {
		if n == name {
			return rel, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRelation, s)
}
