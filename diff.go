package analytic

import "math"

// RoundoffError is the assumed relative round-off error C of evaluating a
// function. It determines the step of [Derivative].
const RoundoffError = 1e-16

var derivativeStep = math.Cbrt(RoundoffError)

// DerivativeStep returns the step h used by [Derivative], h = ∛C with C =
// [RoundoffError]. For a centered difference, this balances the truncation
// error, which grows with h², against the cancellation error, which grows
// with C/h.
func DerivativeStep() float64 {
	return derivativeStep
}

// Derivative approximates f'(a) with the centered difference
//
//	(f(a + h/2) - f(a - h/2)) / h
//
// where h is [DerivativeStep]. The step is fixed: it doesn't adapt to a or to
// the scale of f.
func Derivative[T Scalar](f func(float64) T, a float64) T {
	h := derivativeStep
	return scale(1/h, f(a+h/2)-f(a-h/2))
}
