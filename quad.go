package analytic

// Quad integrates f over [a, b] using n-point Gauss-Legendre quadrature.
//
// For smooth functions this is the most accurate of the numerical
// integrators, as it is exact for polynomials of degree up to 2n-1. Errors are
// those of [GaussLegendre].
func Quad[T Scalar](f func(float64) T, a, b float64, n int) (T, error) {
	r, err := GaussLegendreOn(a, b, n)
	if err != nil {
		return 0, err
	}
	return ApplyRule(r, f), nil
}

// ApplyRule applies the rule r to f, returning Σ wᵢ·f(xᵢ).
func ApplyRule[T Scalar](r Rule, f func(float64) T) T {
	var sum T
	for i, x := range r.Nodes {
		sum += scale(r.Weights[i], f(x))
	}
	return sum
}
