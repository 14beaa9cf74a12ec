package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-social/pkg/analysis"
	"github.com/dd0wney/cluso-social/pkg/export"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

type resolver struct {
	analyzer *analysis.Analyzer
	opts     SchemaOptions
}

func relationArg(p graphql.ResolveParams, name string) (graph.Relation, error) {
	v, _ := p.Args[name].(string)
	return graph.ParseRelation(v)
}

func (r *resolver) top(p graphql.ResolveParams) int {
	requested, ok := p.Args["top"].(int)
	if !ok {
		requested = -1
	}
	return r.opts.Limits.Apply(requested)
}

// ref parses a user argument in the store's namespace
func (r *resolver) ref(p graphql.ResolveParams, name string) (social.Ref, error) {
	raw, _ := p.Args[name].(string)
	id, err := social.ParseIdentifier(r.analyzer.Store().Namespace(), raw)
	if err != nil {
		return social.Ref{}, fmt.Errorf("%s: %w", name, err)
	}
	return social.RefIdentifier(id), nil
}

func (r *resolver) seeds(p graphql.ResolveParams) (any, error) {
	return userList(r.analyzer.Store().Seeds()), nil
}

func (r *resolver) graphReport(p graphql.ResolveParams) (any, error) {
	rel, err := relationArg(p, "relation")
	if err != nil {
		return nil, err
	}
	report, err := r.analyzer.GraphReport(rel, r.top(p))
	if err != nil {
		return nil, err
	}

	communities := make([]any, len(report.Communities))
	for i, c := range report.Communities {
		communities[i] = map[string]any{
			"index":       c.Index,
			"size":        c.Size,
			"density":     c.Density,
			"hubs":        rankedList(c.Top[analysis.Centrality]),
			"brokers":     rankedList(c.Top[analysis.Betweenness]),
			"influencers": rankedList(c.Top[analysis.Eigenvector]),
		}
	}
	return map[string]any{
		"relation":       report.Relation.String(),
		"nodes":          report.Nodes,
		"edges":          report.Edges,
		"interactions":   report.Interactions,
		"density":        report.Density,
		"triadicClosure": report.TriadicClosure,
		"hubs":           rankedList(report.Hubs),
		"brokers":        rankedList(report.Brokers),
		"influencers":    rankedList(report.Influencers),
		"components":     report.Components,
		"communityCount": report.CommunityCount,
		"modularity":     report.Modularity,
		"communities":    communities,
	}, nil
}

func (r *resolver) topNodes(p graphql.ResolveParams) (any, error) {
	rel, err := relationArg(p, "relation")
	if err != nil {
		return nil, err
	}
	name, _ := p.Args["metric"].(string)
	metric, err := analysis.ParseMetric(name)
	if err != nil {
		return nil, err
	}
	ranked, err := r.analyzer.TopNodes(rel, metric, r.top(p))
	if err != nil {
		return nil, err
	}
	return rankedList(ranked), nil
}

func (r *resolver) measures(p graphql.ResolveParams) (any, error) {
	ref, err := r.ref(p, "user")
	if err != nil {
		return nil, err
	}
	measures, err := r.analyzer.Measures(ref)
	if err != nil {
		return nil, err
	}

	var out []any
	for _, rel := range graph.Relations {
		m, ok := measures[rel]
		if !ok {
			continue
		}
		out = append(out, map[string]any{
			"relation":    rel.String(),
			"centrality":  m.Centrality,
			"betweenness": m.Betweenness,
			"eigenvector": m.Eigenvector,
		})
	}
	return out, nil
}

func sectionOptions(p graphql.ResolveParams) analysis.RelationshipOptions {
	raw, ok := p.Args["sections"].([]any)
	if !ok || len(raw) == 0 {
		return analysis.AllSections()
	}
	var opts analysis.RelationshipOptions
	for _, v := range raw {
		name, _ := v.(string)
		rel, err := graph.ParseRelation(name)
		if err != nil {
			continue
		}
		switch rel {
		case graph.Connections:
			opts.Connections = true
		case graph.Reshares:
			opts.Reshares = true
		case graph.Mentions:
			opts.Mentions = true
		case graph.Favorites:
			opts.Favorites = true
		case graph.Comments:
			opts.Comments = true
		}
	}
	return opts
}

func (r *resolver) relationship(p graphql.ResolveParams) (any, error) {
	a, err := r.ref(p, "a")
	if err != nil {
		return nil, err
	}
	b, err := r.ref(p, "b")
	if err != nil {
		return nil, err
	}
	report, err := r.analyzer.RelationshipReport(a, b, sectionOptions(p))
	if err != nil {
		return nil, err
	}

	paths := make([]any, len(report.Paths))
	for i, path := range report.Paths {
		paths[i] = userList(path)
	}

	var sections []any
	for _, rel := range graph.InteractionRelations {
		if !report.Options.Enabled(rel) {
			continue
		}
		direct := report.Direct[rel]
		sections = append(sections, map[string]any{
			"relation":      rel.String(),
			"aToB":          interactionList(direct.AToB),
			"bToA":          interactionList(direct.BToA),
			"commonSources": userList(report.CommonSources[rel].Sources),
		})
	}

	out := map[string]any{
		"a":               userMap(report.A),
		"b":               userMap(report.B),
		"source":          userMap(report.Source),
		"target":          userMap(report.Target),
		"commonFriends":   userList(report.CommonFriends),
		"commonFollowers": userList(report.CommonFollowers),
		"paths":           paths,
		"sections":        sections,
	}
	if report.Options.Connections {
		out["connection"] = report.Connection.String()
	}
	return out, nil
}

func (r *resolver) export(p graphql.ResolveParams) (any, error) {
	rel, err := relationArg(p, "relation")
	if err != nil {
		return nil, err
	}
	nl, err := export.Export(r.analyzer.Store(), rel, r.opts.Export)
	if err != nil || nl == nil {
		return nil, err
	}
	data, err := nl.Marshal()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
