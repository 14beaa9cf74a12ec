// Package report renders analysis reports as terminal text.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-social/pkg/analysis"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/social"
)

const none = "none"

func field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func userList(users []*social.User) string {
	if len(users) == 0 {
		return none
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name()
	}
	return strings.Join(names, ", ")
}

func rankedList(rs []analysis.RankedUser) string {
	if len(rs) == 0 {
		return dimStyle.Render(none)
	}
	lines := make([]string, len(rs))
	for i, r := range rs {
		lines[i] = fmt.Sprintf("%2d. %-20s %.4f", i+1, r.User.Name(), r.Value)
	}
	return strings.Join(lines, "\n")
}

func measureTable(m analysis.Measures) string {
	lines := []string{dimStyle.Render(fmt.Sprintf("%-12s %12s %12s %12s", "graph", "degree", "betweenness", "eigenvector"))}
	for _, rel := range graph.Relations {
		v, ok := m[rel]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s %12.4f %12.4f %12.4f", rel, v.Centrality, v.Betweenness, v.Eigenvector))
	}
	return strings.Join(lines, "\n")
}

// User renders a UserReport
func User(r *analysis.UserReport) string {
	parts := []string{
		titleStyle.Render(fmt.Sprintf("User %s (%d)", r.User.Name(), r.User.ID)),
		sectionStyle.Render("Measures"),
		measureTable(r.Measures),
		sectionStyle.Render("Connections"),
		field("follows", userList(r.Follows)),
		field("followed by", userList(r.FollowedBy)),
		sectionStyle.Render("Interactions"),
	}

	found := false
	for _, rel := range graph.InteractionRelations {
		counts := r.Interactions[rel]
		if len(counts) == 0 {
			continue
		}
		found = true
		for _, c := range counts {
			parts = append(parts, fmt.Sprintf("%-10s %-20s out %3d  in %3d", rel, c.User.Name(), c.Outgoing, c.Incoming))
		}
	}
	if !found {
		parts = append(parts, dimStyle.Render(none))
	}

	parts = append(parts, sectionStyle.Render("Critical posts"))
	if len(r.CriticalPosts) == 0 {
		parts = append(parts, dimStyle.Render(none))
	}
	for _, p := range r.CriticalPosts {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("[%d] %s", p.ID, p.Text)))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func connectionLine(r *analysis.RelationshipReport) string {
	if r.Connection == analysis.ConnectionUnidirectional {
		return fmt.Sprintf("%s (%s -> %s)", r.Connection, r.Source.Name(), r.Target.Name())
	}
	return r.Connection.String()
}

func pathList(paths [][]*social.User) string {
	if len(paths) == 0 {
		return none
	}
	lines := make([]string, len(paths))
	for i, p := range paths {
		names := make([]string, len(p))
		for j, u := range p {
			names[j] = u.Name()
		}
		lines[i] = strings.Join(names, " -> ")
	}
	return strings.Join(lines, "\n")
}

func interactionLines(label string, items []social.Interaction) []string {
	if len(items) == 0 {
		return nil
	}
	lines := []string{dimStyle.Render(label)}
	for _, it := range items {
		lines = append(lines, "  "+fmt.Sprint(it))
	}
	return lines
}

func sourceLines(name string, items []analysis.SourceInteractions) []string {
	var lines []string
	for _, si := range items {
		lines = append(lines, interactionLines(fmt.Sprintf("%s via %s", name, si.Source.Name()), si.Interactions)...)
	}
	return lines
}

// Relationship renders a RelationshipReport. Disabled sections are omitted.
func Relationship(r *analysis.RelationshipReport) string {
	a, b := r.A.Name(), r.B.Name()
	parts := []string{titleStyle.Render(fmt.Sprintf("Relationship %s / %s", a, b))}

	if r.Options.Connections {
		parts = append(parts,
			sectionStyle.Render("Connections"),
			field("connection", connectionLine(r)),
			field("common friends", userList(r.CommonFriends)),
			field("common followers", userList(r.CommonFollowers)),
			field("shortest paths", ""),
			pathList(r.Paths),
		)
	}

	for _, rel := range graph.InteractionRelations {
		if !r.Options.Enabled(rel) {
			continue
		}
		parts = append(parts, sectionStyle.Render(strings.ToUpper(rel.String()[:1])+rel.String()[1:]))

		var lines []string
		d := r.Direct[rel]
		lines = append(lines, interactionLines(a+" -> "+b, d.AToB)...)
		lines = append(lines, interactionLines(b+" -> "+a, d.BToA)...)
		cs := r.CommonSources[rel]
		if len(cs.Sources) > 0 {
			lines = append(lines, field("common sources", userList(cs.Sources)))
			lines = append(lines, sourceLines(a, cs.A)...)
			lines = append(lines, sourceLines(b, cs.B)...)
		}
		if len(lines) == 0 {
			lines = []string{dimStyle.Render(none)}
		}
		parts = append(parts, lines...)
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Graph renders a GraphReport
func Graph(r *analysis.GraphReport) string {
	parts := []string{
		titleStyle.Render("Graph " + r.Relation.String()),
		field("nodes", fmt.Sprint(r.Nodes)),
		field("edges", fmt.Sprint(r.Edges)),
		field("interactions", fmt.Sprint(r.Interactions)),
		field("density", fmt.Sprintf("%.4f", r.Density)),
		field("triadic closure", fmt.Sprintf("%.4f", r.TriadicClosure)),
		field("components", fmt.Sprint(r.Components)),
		field("communities", fmt.Sprint(r.CommunityCount)),
		field("modularity", fmt.Sprintf("%.4f", r.Modularity)),
		sectionStyle.Render("Hubs (degree)"),
		rankedList(r.Hubs),
		sectionStyle.Render("Brokers (betweenness)"),
		rankedList(r.Brokers),
		sectionStyle.Render("Influencers (eigenvector)"),
		rankedList(r.Influencers),
	}

	for _, c := range r.Communities {
		parts = append(parts, sectionStyle.Render(fmt.Sprintf("Community %d (%d members, density %.4f)", c.Index, c.Size, c.Density)))
		metrics := make([]analysis.Metric, 0, len(c.Top))
		for m := range c.Top {
			metrics = append(metrics, m)
		}
		sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })
		for _, m := range metrics {
			parts = append(parts, dimStyle.Render(m.String()), rankedList(c.Top[m]))
		}
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
