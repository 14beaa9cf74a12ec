package graphql

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-social/pkg/analysis"
	"github.com/dd0wney/cluso-social/pkg/export"
	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/provider"
	"github.com/dd0wney/cluso-social/pkg/social"
)

var epoch = time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)

// setupSchema analyses a reciprocal triangle 1-2-3 bridged by 3->4 to the
// cycle 4->5->6->4, with one mention 2->1
func setupSchema(t *testing.T) graphql.Schema {
	t.Helper()

	p := provider.NewMemory()
	for i, name := range []string{"alice", "bob", "carol", "dave", "erin", "frank"} {
		p.AddUser(int64(i+1), name)
	}
	p.Follow(1, 2).Follow(2, 1).
		Follow(2, 3).Follow(3, 2).
		Follow(1, 3).Follow(3, 1).
		Follow(3, 4).
		Follow(4, 5).Follow(5, 6).Follow(6, 4).
		AddPost(20, 2, "hi @alice", epoch).
		Mention(2, 1, 20)

	seeds := make([]social.Identifier, 6)
	for i := range seeds {
		seeds[i] = social.IDKey(int64(i + 1))
	}
	store, err := graph.Build(context.Background(), p, social.NamespaceID, seeds, graph.BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	a := analysis.New(store, nil, analysis.DefaultOptions())
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	schema, err := GenerateSchema(a, DefaultSchemaOptions())
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}
	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string) map[string]any {
	t.Helper()
	result := ExecuteQuery(context.Background(), schema, query, nil)
	if result.HasErrors() {
		t.Fatalf("Query failed: %v", result.Errors)
	}
	return result.Data.(map[string]any)
}

func TestTopNodesQuery(t *testing.T) {
	schema := setupSchema(t)

	data := execute(t, schema, `{ topNodes(relation: CONNECTIONS, metric: BETWEENNESS, top: 1) { user { id name } value } }`)

	nodes := data["topNodes"].([]any)
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 ranked user, got %d", len(nodes))
	}
	user := nodes[0].(map[string]any)["user"].(map[string]any)
	if user["id"] != "4" || user["name"] != "dave" {
		t.Errorf("Expected the bridge endpoint dave (4), got %v", user)
	}
}

func TestGraphReportQuery(t *testing.T) {
	schema := setupSchema(t)

	data := execute(t, schema, `{ graphReport(relation: CONNECTIONS, top: 2) { relation nodes edges communityCount communities { size hubs { value } } } }`)

	report := data["graphReport"].(map[string]any)
	if report["relation"] != "CONNECTIONS" {
		t.Errorf("Expected relation CONNECTIONS, got %v", report["relation"])
	}
	if report["nodes"] != 6 || report["edges"] != 10 {
		t.Errorf("Expected 6 nodes and 10 edges, got %v and %v", report["nodes"], report["edges"])
	}
	if report["communityCount"] != 2 {
		t.Errorf("Expected 2 communities, got %v", report["communityCount"])
	}
	communities := report["communities"].([]any)
	if len(communities) != 2 {
		t.Fatalf("Expected 2 community breakdowns, got %d", len(communities))
	}
	if hubs := communities[0].(map[string]any)["hubs"].([]any); len(hubs) != 2 {
		t.Errorf("Expected 2 hubs per community, got %d", len(hubs))
	}
}

func TestMeasuresQuery(t *testing.T) {
	schema := setupSchema(t)

	data := execute(t, schema, `{ measures(user: "4") { relation betweenness } }`)

	measures := data["measures"].([]any)
	if len(measures) != len(graph.Relations) {
		t.Fatalf("Expected a measure per relation, got %d", len(measures))
	}
	first := measures[0].(map[string]any)
	if first["relation"] != "CONNECTIONS" {
		t.Errorf("Expected connections first, got %v", first["relation"])
	}
	if b, _ := first["betweenness"].(float64); b <= 0 {
		t.Errorf("Expected positive betweenness for the bridge endpoint, got %v", first["betweenness"])
	}
}

func TestRelationshipQuery(t *testing.T) {
	schema := setupSchema(t)

	data := execute(t, schema, `{ relationship(a: "1", b: "2") { connection commonFollowers { id } sections { relation bToA { kind postId } } } }`)

	rel := data["relationship"].(map[string]any)
	if rel["connection"] != "BIDIRECTIONAL" {
		t.Errorf("Expected BIDIRECTIONAL, got %v", rel["connection"])
	}
	followers := rel["commonFollowers"].([]any)
	if len(followers) != 1 || followers[0].(map[string]any)["id"] != "3" {
		t.Errorf("Expected common follower 3, got %v", followers)
	}

	sections := rel["sections"].([]any)
	if len(sections) != len(graph.InteractionRelations) {
		t.Fatalf("Expected all interaction sections, got %d", len(sections))
	}
	mentions := sections[1].(map[string]any)
	if mentions["relation"] != "MENTIONS" {
		t.Fatalf("Expected mentions second, got %v", mentions["relation"])
	}
	bToA := mentions["bToA"].([]any)
	if len(bToA) != 1 || bToA[0].(map[string]any)["kind"] != "mention" || bToA[0].(map[string]any)["postId"] != "20" {
		t.Errorf("Expected one mention in post 20, got %v", bToA)
	}
}

func TestRelationshipQuery_Sections(t *testing.T) {
	schema := setupSchema(t)

	data := execute(t, schema, `{ relationship(a: "1", b: "2", sections: [MENTIONS]) { connection sections { relation } } }`)

	rel := data["relationship"].(map[string]any)
	if rel["connection"] != nil {
		t.Errorf("Expected no connection section, got %v", rel["connection"])
	}
	if sections := rel["sections"].([]any); len(sections) != 1 {
		t.Errorf("Expected only the mentions section, got %v", sections)
	}
}

func TestRelationshipQuery_UnknownUser(t *testing.T) {
	schema := setupSchema(t)

	result := ExecuteQuery(context.Background(), schema, `{ relationship(a: "1", b: "404") { connection } }`, nil)
	if !result.HasErrors() {
		t.Fatal("Expected an error for an unknown user")
	}

	result = ExecuteQuery(context.Background(), schema, `{ measures(user: "alice") { relation } }`, nil)
	if !result.HasErrors() {
		t.Fatal("Expected an error for a handle in the id namespace")
	}
}

func TestExportQuery(t *testing.T) {
	schema := setupSchema(t)

	data := execute(t, schema, `{ connections: export(relation: CONNECTIONS) comments: export(relation: COMMENTS) }`)

	if data["comments"] != nil {
		t.Errorf("Expected null export for a graph without edges, got %v", data["comments"])
	}
	raw, ok := data["connections"].(string)
	if !ok {
		t.Fatalf("Expected a JSON string, got %T", data["connections"])
	}
	nl, err := export.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(nl.Nodes) != 6 || len(nl.Links) != 10 {
		t.Errorf("Expected 6 nodes and 10 links, got %d and %d", len(nl.Nodes), len(nl.Links))
	}
}

func TestVariables(t *testing.T) {
	schema := setupSchema(t)

	result := ExecuteQuery(context.Background(), schema,
		`query Top($rel: Relation!, $n: Int) { topNodes(relation: $rel, metric: CENTRALITY, top: $n) { value } }`,
		map[string]any{"rel": "CONNECTIONS", "n": 3})
	if result.HasErrors() {
		t.Fatalf("Query failed: %v", result.Errors)
	}
	if nodes := result.Data.(map[string]any)["topNodes"].([]any); len(nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(nodes))
	}
}
