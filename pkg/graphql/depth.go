package graphql

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// DefaultMaxDepth admits relationship paths (relationship > paths > user) with room
// for one more level.
const DefaultMaxDepth = 5

// depthWalker measures selection depth. Named fragments are expanded in place;
// a fragment that spreads itself is counted once.
type depthWalker struct {
	fragments map[string]*ast.FragmentDefinition
	active    map[string]bool
}

func queryDepth(doc *ast.Document) int {
	w := &depthWalker{
		fragments: make(map[string]*ast.FragmentDefinition),
		active:    make(map[string]bool),
	}
	for _, def := range doc.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok && frag.Name != nil {
			w.fragments[frag.Name.Value] = frag
		}
	}

	depth := 0
	for _, def := range doc.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok {
			depth = max(depth, w.selections(op.SelectionSet, 1))
		}
	}
	return depth
}

func (w *depthWalker) selections(set *ast.SelectionSet, level int) int {
	if set == nil {
		return level
	}
	deepest := level
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if strings.HasPrefix(s.Name.Value, "__") || s.SelectionSet == nil {
				continue
			}
			deepest = max(deepest, w.selections(s.SelectionSet, level+1))
		case *ast.InlineFragment:
			deepest = max(deepest, w.selections(s.SelectionSet, level))
		case *ast.FragmentSpread:
			name := s.Name.Value
			frag, ok := w.fragments[name]
			if !ok || w.active[name] {
				continue
			}
			w.active[name] = true
			deepest = max(deepest, w.selections(frag.SelectionSet, level))
			delete(w.active, name)
		}
	}
	return deepest
}

// ValidateQueryDepth parses query and rejects it when it nests deeper than maxDepth
func ValidateQueryDepth(query string, maxDepth int) error {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}
	if d := queryDepth(doc); d > maxDepth {
		return fmt.Errorf("query depth %d exceeds maximum allowed depth %d", d, maxDepth)
	}
	return nil
}
