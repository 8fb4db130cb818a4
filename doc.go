// Package analytic provides numerical and symbolic integration and
// differentiation of functions of one real variable. It was designed for
// exploratory calculus on closed-form functions, such as in teaching or when
// checking a derivation, but the numerical routines are general enough to be
// used elsewhere.
//
// # Functions
//
// [Function] wraps a Go function of type func(float64) T, where T is a real or
// complex floating point type (see [Scalar]). It has methods for all the
// algorithms of this package. The algorithms are also available as plain
// functions that accept a func(float64) T directly.
//
// # Integration
//
// We provide the following integrators:
//
//   - [Trapezoid], the composite trapezoid rule
//   - [Simpson], the composite Simpson rule
//   - [Quad], Gauss-Legendre quadrature
//   - [Romberg], Romberg's method, Richardson extrapolation of trapezoid
//     estimates
//
// For smooth functions, [Quad] is the most accurate by far. [GaussLegendre]
// computes the nodes and weights it uses, for any order.
//
// # Differentiation
//
// [Derivative] approximates derivatives with a centered difference. Its step
// is chosen to balance truncation error against round-off error, see
// [DerivativeStep].
//
// # Symbolic operations
//
// A [Function] can carry an [Expr], a symbolic description of itself. Using it,
// [Function.SymbolicDerivative] and [Function.SymbolicAntiderivative] compute
// exact derivatives and integrals that can be evaluated or rendered as LaTeX.
// This package only implements polynomials ([Poly]); other computer algebra
// systems can be plugged in by implementing [Expr].
//
// # Errors
//
// Invalid parameters and numerical failures are reported as errors, never as
// NaN. The sentinel errors are of type [Error] and can be matched with
// [errors.Is].
//
// # Literature
//
// This package makes use of the following ideas:
//   - [Computational Physics] by Mark Newman, chapter 5
//   - [Romberg's method]
//   - [Numerical differentiation]
//
// [Computational Physics]: http://www-personal.umich.edu/~mejn/cp/
// [Romberg's method]: https://en.wikipedia.org/wiki/Romberg%27s_method
// [Numerical differentiation]: https://en.wikipedia.org/wiki/Numerical_differentiation
package analytic
