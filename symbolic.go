package analytic

import "fmt"

// SymbolicDerivative returns the derivative of the attached expression. It is
// computed on first use and reused afterwards.
func (f *Function[T]) SymbolicDerivative() (Expr, error) {
	if f.expr == nil {
		return nil, ErrNotAnalytic
	}
	f.derivOnce.Do(func() {
		f.deriv = f.expr.Derivative()
	})
	return f.deriv, nil
}

// SymbolicAntiderivative returns an antiderivative of the attached
// expression. It is computed on first use and reused afterwards.
func (f *Function[T]) SymbolicAntiderivative() (Expr, error) {
	if f.expr == nil {
		return nil, ErrNotAnalytic
	}
	f.antiOnce.Do(func() {
		f.anti, f.antiErr = f.expr.Antiderivative()
	})
	return f.anti, f.antiErr
}

// DerivativeAt evaluates the symbolic derivative at a.
func (f *Function[T]) DerivativeAt(a float64) (complex128, error) {
	d, err := f.SymbolicDerivative()
	if err != nil {
		return 0, err
	}
	return d.Eval(a)
}

// DefiniteIntegral evaluates F(b) - F(a), where F is the symbolic
// antiderivative.
func (f *Function[T]) DefiniteIntegral(a, b float64) (complex128, error) {
	F, err := f.SymbolicAntiderivative()
	if err != nil {
		return 0, err
	}
	fb, err := F.Eval(b)
	if err != nil {
		return 0, fmt.Errorf("evaluating antiderivative at upper bound: %w", err)
	}
	fa, err := F.Eval(a)
	if err != nil {
		return 0, fmt.Errorf("evaluating antiderivative at lower bound: %w", err)
	}
	return fb - fa, nil
}

// Integrate integrates f over [a, b] analytically. It is equivalent to
// [Function.DefiniteIntegral]; use [Function.Quad] and friends to integrate
// numerically.
func (f *Function[T]) Integrate(a, b float64) (complex128, error) {
	return f.DefiniteIntegral(a, b)
}
