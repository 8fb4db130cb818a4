package analytic

import "fmt"

// Error is the error type for sentinel errors of this package.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrInvalidOrder is returned when a Gauss-Legendre rule of order less than
// one is requested.
const ErrInvalidOrder = Error("quadrature order must be at least 1")

// ErrNoConvergence is matched by [*ConvergenceError].
const ErrNoConvergence = Error("iteration did not converge")

// ErrInvalidPanels is returned by the composite rules when the number of
// panels is less than one.
const ErrInvalidPanels = Error("number of panels must be at least 1")

// ErrOddPanels is returned by [Simpson] for an odd number of panels.
const ErrOddPanels = Error("Simpson's rule requires an even number of panels")

// ErrInvalidRombergIndex is returned for Romberg indices outside 0 ≤ m ≤ n.
const ErrInvalidRombergIndex = Error("Romberg indices must satisfy 0 <= m <= n")

// ErrDepthLimit is returned when a Romberg level exceeds [MaxRombergLevel].
const ErrDepthLimit = Error("Romberg level exceeds depth limit")

// ErrNotAnalytic is returned by symbolic operations on a [Function] that has no
// expression attached.
const ErrNotAnalytic = Error("function has no symbolic expression")

// ErrNoAntiderivative is returned by [Expr.Antiderivative] when an expression
// has no closed form antiderivative.
const ErrNoAntiderivative = Error("expression has no known antiderivative")

// ConvergenceError reports a Newton iteration that didn't reach its tolerance
// within the iteration cap.
type ConvergenceError struct {
	// Order is the order of the rule whose nodes were being refined.
	Order int
	// Iterations is the number of iterations that were performed.
	Iterations int
	// Delta is the largest node update of the last iteration.
	Delta float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: order %d, %d iterations, last update %g",
		ErrNoConvergence, e.Order, e.Iterations, e.Delta)
}

func (e *ConvergenceError) Is(target error) bool {
	return target == ErrNoConvergence
}
