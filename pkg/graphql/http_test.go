package graphql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dd0wney/cluso-social/pkg/metrics"
)

func postQuery(t *testing.T, handler http.Handler, query string) (*httptest.ResponseRecorder, GraphQLResponse) {
	t.Helper()
	body, _ := json.Marshal(GraphQLRequest{Query: query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var response GraphQLResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return w, response
}

// TestGraphQLHTTPHandler tests the HTTP handler for GraphQL queries
func TestGraphQLHTTPHandler(t *testing.T) {
	reg := metrics.NewRegistry()
	handler := NewGraphQLHandler(setupSchema(t), nil, reg)

	w, response := postQuery(t, handler, `{ seeds { id handle } }`)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if len(response.Errors) > 0 {
		t.Fatalf("Expected no errors, got %v", response.Errors)
	}
	data := response.Data.(map[string]any)
	if seeds := data["seeds"].([]any); len(seeds) != 6 {
		t.Errorf("Expected 6 seeds, got %d", len(seeds))
	}
	if got := testutil.ToFloat64(reg.GraphQLRequestsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("Expected 1 successful request recorded, got %f", got)
	}
}

func TestGraphQLHTTPHandler_QueryErrors(t *testing.T) {
	reg := metrics.NewRegistry()
	handler := NewGraphQLHandler(setupSchema(t), nil, reg).WithMaxDepth(2)

	_, response := postQuery(t, handler, `{ relationship(a: "1", b: "2") { paths { id } } }`)
	if len(response.Errors) != 1 {
		t.Fatalf("Expected a depth error, got %v", response.Errors)
	}

	_, response = postQuery(t, handler, `{ topNodes(relation: LIKES, metric: CENTRALITY) { value } }`)
	if len(response.Errors) == 0 {
		t.Error("Expected a validation error for an unknown relation")
	}
	if got := testutil.ToFloat64(reg.GraphQLRequestsTotal.WithLabelValues("error")); got != 2 {
		t.Errorf("Expected 2 failed requests recorded, got %f", got)
	}
}

func TestGraphQLHTTPHandler_Methods(t *testing.T) {
	handler := NewGraphQLHandler(setupSchema(t), nil, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/graphql", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for OPTIONS, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("{not json"))))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a malformed body, got %d", w.Code)
	}
}
