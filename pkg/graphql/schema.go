// Package graphql exposes analysis results over a read-only GraphQL schema.
package graphql

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-social/pkg/analysis"
	"github.com/dd0wney/cluso-social/pkg/export"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// SchemaOptions configures the generated schema
type SchemaOptions struct {
	Limits LimitConfig
	Export export.Options
}

// DefaultSchemaOptions returns the options used by the server
func DefaultSchemaOptions() SchemaOptions {
	return SchemaOptions{Limits: DefaultLimitConfig()}
}

// GenerateSchema builds the query schema over an analysed store
func GenerateSchema(a *analysis.Analyzer, opts SchemaOptions) (graphql.Schema, error) {
	if err := opts.Limits.Validate(); err != nil {
		return graphql.Schema{}, err
	}
	r := &resolver{analyzer: a, opts: opts}

	topArg := &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: -1}
	relationArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(relationEnum)}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"seeds": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.seeds,
			},
			"graphReport": &graphql.Field{
				Type:    graphReportType,
				Args:    graphql.FieldConfigArgument{"relation": relationArg, "top": topArg},
				Resolve: r.graphReport,
			},
			"topNodes": &graphql.Field{
				Type: graphql.NewList(rankedUserType),
				Args: graphql.FieldConfigArgument{
					"relation": relationArg,
					"metric":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(metricEnum)},
					"top":      topArg,
				},
				Resolve: r.topNodes,
			},
			"measures": &graphql.Field{
				Type:    graphql.NewList(measureType),
				Args:    graphql.FieldConfigArgument{"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}},
				Resolve: r.measures,
			},
			"relationship": &graphql.Field{
				Type: relationshipType,
				Args: graphql.FieldConfigArgument{
					"a":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"b":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"sections": &graphql.ArgumentConfig{Type: graphql.NewList(relationEnum)},
				},
				Resolve: r.relationship,
			},
			"export": &graphql.Field{
				Type:        graphql.String,
				Description: "Node/link JSON of one relation, null when it has no edges",
				Args:        graphql.FieldConfigArgument{"relation": relationArg},
				Resolve:     r.export,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

var relationEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Relation",
	Values: graphql.EnumValueConfigMap{
		"CONNECTIONS": &graphql.EnumValueConfig{Value: graph.Connections.String()},
		"RESHARES":    &graphql.EnumValueConfig{Value: graph.Reshares.String()},
		"MENTIONS":    &graphql.EnumValueConfig{Value: graph.Mentions.String()},
		"FAVORITES":   &graphql.EnumValueConfig{Value: graph.Favorites.String()},
		"COMMENTS":    &graphql.EnumValueConfig{Value: graph.Comments.String()},
	},
})

var metricEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Metric",
	Values: graphql.EnumValueConfigMap{
		"CENTRALITY":  &graphql.EnumValueConfig{Value: analysis.Centrality.String()},
		"BETWEENNESS": &graphql.EnumValueConfig{Value: analysis.Betweenness.String()},
		"EIGENVECTOR": &graphql.EnumValueConfig{Value: analysis.Eigenvector.String()},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"handle": &graphql.Field{Type: graphql.String},
		"name":   &graphql.Field{Type: graphql.String},
	},
})

var rankedUserType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RankedUser",
	Fields: graphql.Fields{
		"user":  &graphql.Field{Type: userType},
		"value": &graphql.Field{Type: graphql.Float},
	},
})

var measureType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Measure",
	Fields: graphql.Fields{
		"relation":    &graphql.Field{Type: relationEnum},
		"centrality":  &graphql.Field{Type: graphql.Float},
		"betweenness": &graphql.Field{Type: graphql.Float},
		"eigenvector": &graphql.Field{Type: graphql.Float},
	},
})

var communityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Community",
	Fields: graphql.Fields{
		"index":       &graphql.Field{Type: graphql.Int},
		"size":        &graphql.Field{Type: graphql.Int},
		"density":     &graphql.Field{Type: graphql.Float},
		"hubs":        &graphql.Field{Type: graphql.NewList(rankedUserType)},
		"brokers":     &graphql.Field{Type: graphql.NewList(rankedUserType)},
		"influencers": &graphql.Field{Type: graphql.NewList(rankedUserType)},
	},
})

var graphReportType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GraphReport",
	Fields: graphql.Fields{
		"relation":       &graphql.Field{Type: relationEnum},
		"nodes":          &graphql.Field{Type: graphql.Int},
		"edges":          &graphql.Field{Type: graphql.Int},
		"interactions":   &graphql.Field{Type: graphql.Int},
		"density":        &graphql.Field{Type: graphql.Float},
		"triadicClosure": &graphql.Field{Type: graphql.Float},
		"hubs":           &graphql.Field{Type: graphql.NewList(rankedUserType)},
		"brokers":        &graphql.Field{Type: graphql.NewList(rankedUserType)},
		"influencers":    &graphql.Field{Type: graphql.NewList(rankedUserType)},
		"components":     &graphql.Field{Type: graphql.Int},
		"communityCount": &graphql.Field{Type: graphql.Int},
		"modularity":     &graphql.Field{Type: graphql.Float},
		"communities":    &graphql.Field{Type: graphql.NewList(communityType)},
	},
})

var interactionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Interaction",
	Fields: graphql.Fields{
		"kind":    &graphql.Field{Type: graphql.String},
		"actor":   &graphql.Field{Type: userType},
		"subject": &graphql.Field{Type: userType},
		"postId":  &graphql.Field{Type: graphql.ID},
	},
})

var sectionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "InteractionSection",
	Fields: graphql.Fields{
		"relation":      &graphql.Field{Type: relationEnum},
		"aToB":          &graphql.Field{Type: graphql.NewList(interactionType)},
		"bToA":          &graphql.Field{Type: graphql.NewList(interactionType)},
		"commonSources": &graphql.Field{Type: graphql.NewList(userType)},
	},
})

var relationshipType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Relationship",
	Fields: graphql.Fields{
		"a":               &graphql.Field{Type: userType},
		"b":               &graphql.Field{Type: userType},
		"connection":      &graphql.Field{Type: graphql.String},
		"source":          &graphql.Field{Type: userType},
		"target":          &graphql.Field{Type: userType},
		"commonFriends":   &graphql.Field{Type: graphql.NewList(userType)},
		"commonFollowers": &graphql.Field{Type: graphql.NewList(userType)},
		"paths":           &graphql.Field{Type: graphql.NewList(graphql.NewList(userType))},
		"sections":        &graphql.Field{Type: graphql.NewList(sectionType)},
	},
})

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func userMap(u *social.User) any {
	if u == nil {
		return nil
	}
	return map[string]any{"id": idString(u.ID), "handle": u.Handle, "name": u.Name()}
}

func userList(users []*social.User) []any {
	out := make([]any, len(users))
	for i, u := range users {
		out[i] = userMap(u)
	}
	return out
}

func rankedList(rs []analysis.RankedUser) []any {
	out := make([]any, len(rs))
	for i, r := range rs {
		out[i] = map[string]any{"user": userMap(r.User), "value": r.Value}
	}
	return out
}

func interactionList(items []social.Interaction) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{
			"kind":    interactionKind(it),
			"actor":   userMap(it.Actor()),
			"subject": userMap(it.Subject()),
			"postId":  idString(it.PostID()),
		}
	}
	return out
}

func interactionKind(it social.Interaction) string {
	switch it.(type) {
	case *social.Reshare:
		return "reshare"
	case *social.Mention:
		return "mention"
	case *social.Favorite:
		return "favorite"
	case *social.Comment:
		return "comment"
	default:
		return "unknown"
	}
}
