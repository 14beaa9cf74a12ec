package algorithms

import (
	"math"
	"testing"
)

func TestEigenvectorCentrality_NoEdges(t *testing.T) {
	g := setupTestGraph(t, 2)

	result := EigenvectorCentrality(g, DefaultEigenvectorOptions())

	if result.Method != EigenNone {
		t.Errorf("Expected no solver for an edgeless graph, got %s", result.Method)
	}
	for id, score := range result.Scores {
		if score != 0.0 {
			t.Errorf("Expected 0 for node %d, got %f", id, score)
		}
	}
}

func TestEigenvectorCentrality_Cycle(t *testing.T) {
	g := setupTestGraph(t, 3, [2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 1})

	result := EigenvectorCentrality(g, DefaultEigenvectorOptions())

	if result.Method != EigenDense {
		t.Fatalf("Expected dense solver on a strongly connected cycle, got %s (%s)", result.Method, result.Reason)
	}
	want := 1 / math.Sqrt(3)
	for id, score := range result.Scores {
		if math.Abs(score-want) > 1e-6 {
			t.Errorf("node %d: expected %f, got %f", id, want, score)
		}
	}
}

func TestEigenvectorCentrality_ReciprocalStar(t *testing.T) {
	// hub 1 exchanges links with 2 and 3; leading eigenvalue is sqrt(2)
	g := setupTestGraph(t, 3, [2]int64{2, 1}, [2]int64{3, 1}, [2]int64{1, 2}, [2]int64{1, 3})

	result := EigenvectorCentrality(g, DefaultEigenvectorOptions())

	if result.Method != EigenDense {
		t.Fatalf("Expected dense solver, got %s (%s)", result.Method, result.Reason)
	}
	if math.Abs(result.Scores[1]-1/math.Sqrt(2)) > 1e-6 {
		t.Errorf("Expected hub score %f, got %f", 1/math.Sqrt(2), result.Scores[1])
	}
	if math.Abs(result.Scores[2]-0.5) > 1e-6 || math.Abs(result.Scores[3]-0.5) > 1e-6 {
		t.Errorf("Expected leaf scores 0.5, got %f and %f", result.Scores[2], result.Scores[3])
	}
}

func TestEigenvectorCentrality_AcyclicFallsBack(t *testing.T) {
	// A star has only zero eigenvalues
	g := setupTestGraph(t, 3, [2]int64{1, 2}, [2]int64{1, 3})

	result := EigenvectorCentrality(g, DefaultEigenvectorOptions())

	if result.Method != EigenPower {
		t.Fatalf("Expected power iteration fallback, got %s", result.Method)
	}
	if result.Reason != reasonNotPositive || !result.Acyclic {
		t.Errorf("Expected an acyclic rejection, got %q (acyclic=%v)", result.Reason, result.Acyclic)
	}
	if result.Iterations == 0 {
		t.Error("Expected at least one iteration")
	}
	if result.Scores[2] <= result.Scores[1] {
		t.Errorf("Expected leaves to outrank the hub: %f vs %f", result.Scores[2], result.Scores[1])
	}
	if math.Abs(result.Scores[2]-result.Scores[3]) > 1e-12 {
		t.Errorf("Expected symmetric leaves, got %f and %f", result.Scores[2], result.Scores[3])
	}
}

func TestEigenvectorCentrality_PowerIterationBudget(t *testing.T) {
	g := setupTestGraph(t, 3, [2]int64{1, 2}, [2]int64{1, 3})

	result := EigenvectorCentrality(g, EigenvectorOptions{MaxIterations: 3, Tolerance: 1e-12})

	if result.Converged {
		t.Error("Expected no convergence within three iterations")
	}
	if result.Iterations != 3 {
		t.Errorf("Expected 3 iterations, got %d", result.Iterations)
	}
	// the last iterate is still reported
	if len(result.Scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(result.Scores))
	}
}

func TestEigenvectorCentrality_SymmetricComponents(t *testing.T) {
	// two reciprocal pairs share the leading eigenvalue 1
	g := setupTestGraph(t, 4, [2]int64{1, 2}, [2]int64{2, 1}, [2]int64{3, 4}, [2]int64{4, 3})

	result := EigenvectorCentrality(g, DefaultEigenvectorOptions())

	if result.Method != EigenPower || result.Reason != reasonNotSimple {
		t.Fatalf("Expected power iteration for a repeated eigenvalue, got %s (%s)", result.Method, result.Reason)
	}
	if result.Acyclic {
		t.Error("Reciprocal pairs are not acyclic")
	}
	if !result.Converged {
		t.Error("Expected power iteration to converge")
	}
	for id, score := range result.Scores {
		if math.Abs(score-0.5) > 1e-9 {
			t.Errorf("node %d: expected 0.5, got %f", id, score)
		}
	}
	if result.Scores[1] != result.Scores[3] {
		t.Errorf("Symmetric components scored differently: %f vs %f", result.Scores[1], result.Scores[3])
	}
}

func TestEigenvectorCentrality_NoNegativeZero(t *testing.T) {
	// node 4 only links out, so it has no in-links and scores zero
	g := setupTestGraph(t, 4,
		[2]int64{1, 2}, [2]int64{2, 1},
		[2]int64{2, 3}, [2]int64{3, 2},
		[2]int64{1, 3}, [2]int64{3, 1},
		[2]int64{4, 1},
	)

	result := EigenvectorCentrality(g, DefaultEigenvectorOptions())

	if result.Method != EigenDense {
		t.Fatalf("Expected dense solver, got %s (%s)", result.Method, result.Reason)
	}
	for id, score := range result.Scores {
		if math.Signbit(score) {
			t.Errorf("node %d: expected a non-negative score, got %v", id, score)
		}
	}
	if result.Scores[4] > 1e-9 {
		t.Errorf("Expected node 4 to score 0, got %f", result.Scores[4])
	}
}
