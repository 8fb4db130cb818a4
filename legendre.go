package analytic

import "math"

// MaxNewtonIterations bounds the number of Newton iterations used by
// [GaussLegendre] to refine the nodes.
const MaxNewtonIterations = 1000

// newtonTolerance is the largest node update at which the refinement stops.
const newtonTolerance = 1e-15

// Rule is a quadrature rule, approximating the integral of f by
// Σ Weights[i]·f(Nodes[i]).
type Rule struct {
	Nodes   []float64
	Weights []float64
}

// Len returns the number of nodes of the rule.
func (r Rule) Len() int { return len(r.Nodes) }

// Map maps a rule defined on [-1, 1] to [a, b]. The receiver isn't modified.
func (r Rule) Map(a, b float64) Rule {
	half := 0.5 * (b - a)
	mid := 0.5 * (b + a)
	out := Rule{
		Nodes:   make([]float64, len(r.Nodes)),
		Weights: make([]float64, len(r.Weights)),
	}
	for i, x := range r.Nodes {
		out.Nodes[i] = half*x + mid
	}
	for i, w := range r.Weights {
		out.Weights[i] = half * w
	}
	return out
}

// GaussLegendre computes the nodes and weights of the n-point Gauss-Legendre
// quadrature rule on [-1, 1]. The rule integrates polynomials of degree up to
// 2n-1 exactly.
//
// Nodes are the roots of the Legendre polynomial Pₙ, found with Newton's
// method starting from an asymptotic approximation. All nodes are refined
// together, until the largest update drops below 1e-15. The nodes are returned
// in decreasing order.
//
// GaussLegendre returns [ErrInvalidOrder] if n < 1 and a [*ConvergenceError]
// if the nodes don't converge within [MaxNewtonIterations] iterations.
//
// This is the method described in Newman's Computational Physics.
func GaussLegendre(n int) (Rule, error) {
	return gaussLegendre(n, MaxNewtonIterations)
}

// gaussLegendre implements [GaussLegendre] with at most maxIter Newton
// iterations.
func gaussLegendre(n, maxIter int) (Rule, error) {
	if n < 1 {
		return Rule{}, ErrInvalidOrder
	}
	N := float64(n)

	x := make([]float64, n)
	for i := range x {
		a := (3 + 4*float64(i)) / (4*N + 2)
		x[i] = math.Cos(math.Pi*a + 1/(8*N*N*math.Tan(a)))
	}

	// dp holds (n+1)/n · Pₙ'(x) for the current nodes. The factor is
	// compensated for by the weight formula.
	dp := make([]float64, n)
	converged := false
	var delta float64
	var iter int
	for iter = 0; iter < maxIter; iter++ {
		delta = 0
		for i, xi := range x {
			p0, p1 := 1.0, xi
			for k := 1; k < n; k++ {
				fk := float64(k)
				p0, p1 = p1, ((2*fk+1)*xi*p1-fk*p0)/(fk+1)
			}
			dp[i] = (N + 1) * (p0 - xi*p1) / (1 - xi*xi)
			dx := p1 / dp[i]
			x[i] = xi - dx
			delta = max(delta, math.Abs(dx))
		}
		if delta <= newtonTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return Rule{}, &ConvergenceError{Order: n, Iterations: iter, Delta: delta}
	}

	w := make([]float64, n)
	for i, xi := range x {
		w[i] = 2 * (N + 1) * (N + 1) / (N * N * (1 - xi*xi) * dp[i] * dp[i])
	}
	return Rule{Nodes: x, Weights: w}, nil
}

// GaussLegendreOn computes the n-point Gauss-Legendre rule for the interval
// [a, b]. See [GaussLegendre].
func GaussLegendreOn(a, b float64, n int) (Rule, error) {
	r, err := GaussLegendre(n)
	if err != nil {
		return Rule{}, err
	}
	return r.Map(a, b), nil
}
