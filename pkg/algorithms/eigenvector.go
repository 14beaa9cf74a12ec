package algorithms

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/dd0wney/cluso-social/pkg/graph"
)

// EigenMethod names the solver that produced an eigenvector result
type EigenMethod string

const (
	EigenNone  EigenMethod = "none"
	EigenDense EigenMethod = "eigen"
	EigenPower EigenMethod = "power"
)

// EigenvectorOptions configures the power-iteration fallback
type EigenvectorOptions struct {
	MaxIterations int
	// Tolerance is per node; iteration stops when the L1 change is below n*Tolerance.
	Tolerance float64
}

// DefaultEigenvectorOptions returns the defaults used by the metric engine
func DefaultEigenvectorOptions() EigenvectorOptions {
	return EigenvectorOptions{
		MaxIterations: 100,
		Tolerance:     1.0e-6,
	}
}

// EigenvectorResult contains eigenvector centrality scores
type EigenvectorResult struct {
	Scores     map[int64]float64
	Method     EigenMethod
	Iterations int
	Converged  bool
	// Reason records why the dense solver was rejected, when it was.
	Reason string
	// Acyclic is set when the spectral radius is zero. Power iteration on such a
	// graph grows polynomially and is not expected to converge.
	Acyclic bool
}

const (
	eigenEpsilon = 1e-9
	// eigenvalues of defective matrices are only accurate to about sqrt(machine epsilon)
	eigenValueEpsilon = 1e-6
)

const (
	reasonNotPositive = "leading eigenvalue is not positive"
	reasonNotSimple   = "leading eigenvalue is not simple"
)

// EigenvectorCentrality computes the principal eigenvector of the in-link relation:
// a node is influential when influential nodes point at it. Edge weights are the
// collapsed interaction counts. The dense gonum solver is tried first; when it
// fails, the leading eigenvalue is not a positive simple real, or the vector has
// mixed signs (disconnected or acyclic structure), power iteration on (A^T + I) is
// used.
// A graph without edges scores 0 everywhere.
func EigenvectorCentrality(g *graph.Digraph, opts EigenvectorOptions) *EigenvectorResult {
	x := newIndexed(g)
	n := x.len()

	if g.Empty() {
		return &EigenvectorResult{
			Scores:    x.scores(make([]float64, n)),
			Method:    EigenNone,
			Converged: true,
		}
	}

	values, reason := denseEigenvector(x)
	if values != nil {
		return &EigenvectorResult{
			Scores:    x.scores(values),
			Method:    EigenDense,
			Converged: true,
		}
	}

	result := powerEigenvector(x, opts)
	result.Reason = reason
	result.Acyclic = reason == reasonNotPositive
	return result
}

// denseEigenvector solves A^T v = lambda v and returns the L2-normalised, non-negative
// principal vector, or nil and a rejection reason.
func denseEigenvector(x *indexed) ([]float64, string) {
	n := x.len()
	a := mat.NewDense(n, n, nil)
	for u := range x.out {
		for i, v := range x.out[u] {
			// row v, column u: in-links of v
			a.Set(v, u, a.At(v, u)+x.outW[u][i])
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenRight); !ok {
		return nil, "factorization failed"
	}

	values := eig.Values(nil)
	lead := 0
	for i := range values {
		if real(values[i]) > real(values[lead]) {
			lead = i
		}
	}
	if math.Abs(imag(values[lead])) > eigenValueEpsilon {
		return nil, "leading eigenvalue is complex"
	}
	if real(values[lead]) <= eigenValueEpsilon {
		return nil, reasonNotPositive
	}
	// components sharing the spectral radius each own an eigenvector; gonum picks one
	for i := range values {
		if i != lead && cmplx.Abs(values[i]-values[lead]) < eigenValueEpsilon {
			return nil, reasonNotSimple
		}
	}

	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	vec := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		c := vectors.At(i, lead)
		if math.Abs(imag(c)) > eigenEpsilon*math.Max(1, cmplx.Abs(c)) {
			return nil, "eigenvector is complex"
		}
		vec[i] = real(c)
		sum += vec[i]
	}
	if math.Abs(sum) < eigenEpsilon {
		return nil, "eigenvector has no dominant sign"
	}
	sign := 1.0
	if sum < 0 {
		sign = -1.0
	}

	norm := 0.0
	for i := range vec {
		vec[i] *= sign
		if vec[i] < -eigenEpsilon {
			return nil, "eigenvector has no dominant sign"
		}
		if vec[i] <= 0 {
			vec[i] = 0
		}
		norm += vec[i] * vec[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil, "eigenvector is zero"
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec, ""
}

// powerEigenvector iterates x <- (A^T + I)x with L2 normalisation. The identity
// shift keeps the iteration from oscillating on bipartite or periodic structure.
func powerEigenvector(x *indexed, opts EigenvectorOptions) *EigenvectorResult {
	n := x.len()
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultEigenvectorOptions().MaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultEigenvectorOptions().Tolerance
	}

	current := make([]float64, n)
	for i := range current {
		current[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)

	result := &EigenvectorResult{Method: EigenPower}
	threshold := float64(n) * opts.Tolerance

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		copy(next, current)
		for u := range x.out {
			for i, v := range x.out[u] {
				next[v] += x.outW[u][i] * current[u]
			}
		}

		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}

		diff := 0.0
		for i := range next {
			next[i] /= norm
			diff += math.Abs(next[i] - current[i])
		}

		current, next = next, current
		result.Iterations = iter

		if diff < threshold {
			result.Converged = true
			break
		}
	}

	result.Scores = x.scores(current)
	return result
}
