package analytic

import (
	"reflect"
	"runtime"
	"sync"
)

// Function wraps a function of one real variable and provides methods for
// integrating and differentiating it.
//
// The wrapped function is called many times by the numerical methods and
// should return the same value for the same argument. Evaluations are not
// memoized.
//
// A Function may additionally carry a symbolic [Expr] describing the same
// function, see [WithExpr]. The symbolic derivative and antiderivative are
// computed once and then reused.
type Function[T Scalar] struct {
	fn   func(float64) T
	name string
	expr Expr

	derivOnce sync.Once
	deriv     Expr

	antiOnce sync.Once
	anti     Expr
	antiErr  error
}

// Option configures a [Function].
type Option func(*options)

type options struct {
	name string
	expr Expr
}

// WithName sets the name reported by [Function.Name].
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithExpr attaches a symbolic expression to the function. The expression
// has to describe the same function as the wrapped Go function; this is not
// verified.
func WithExpr(e Expr) Option {
	return func(o *options) { o.expr = e }
}

// New returns a Function wrapping fn.
func New[T Scalar](fn func(float64) T, opts ...Option) *Function[T] {
	if fn == nil {
		panic("analytic.New called with nil function")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Function[T]{
		fn:   fn,
		name: o.name,
		expr: o.expr,
	}
}

// Eval evaluates the function at x.
func (f *Function[T]) Eval(x float64) T {
	return f.fn(x)
}

// Call evaluates the function with positional arguments.
//
// With one argument, Call is identical to [Function.Eval]. A function of one
// variable can't be called without arguments, so calling it with zero
// arguments evaluates it at 0. Analytic functions in one dimension take
// exactly one argument; additional arguments are accepted but ignored.
func (f *Function[T]) Call(args ...float64) T {
	if len(args) == 0 {
		return f.fn(0)
	}
	return f.fn(args[0])
}

// Func returns the wrapped function.
func (f *Function[T]) Func() func(float64) T {
	return f.fn
}

// Expr returns the attached symbolic expression, if any.
func (f *Function[T]) Expr() (Expr, bool) {
	return f.expr, f.expr != nil
}

// Name returns the name given with [WithName], or the name of the wrapped Go
// function.
func (f *Function[T]) Name() string {
	if f.name != "" {
		return f.name
	}
	if rf := runtime.FuncForPC(reflect.ValueOf(f.fn).Pointer()); rf != nil {
		return rf.Name()
	}
	return ""
}

// Equal reports whether f and other wrap the same Go function.
//
// This compares function identity, not numeric behavior: two different
// functions computing x² are not equal. Closures created by the same function
// literal share their code and compare equal.
func (f *Function[T]) Equal(other *Function[T]) bool {
	if f == nil || other == nil {
		return f == other
	}
	return reflect.ValueOf(f.fn).Pointer() == reflect.ValueOf(other.fn).Pointer()
}

// Trapezoid integrates f over [a, b] with the composite trapezoid rule, see
// [Trapezoid].
func (f *Function[T]) Trapezoid(a, b float64, n int) (T, error) {
	return Trapezoid(f.Eval, a, b, n)
}

// Simpson integrates f over [a, b] with the composite Simpson rule, see
// [Simpson].
func (f *Function[T]) Simpson(a, b float64, n int) (T, error) {
	return Simpson(f.Eval, a, b, n)
}

// Quad integrates f over [a, b] with Gauss-Legendre quadrature of order n,
// see [Quad].
func (f *Function[T]) Quad(a, b float64, n int) (T, error) {
	return Quad(f.Eval, a, b, n)
}

// Romberg returns the Romberg table entry R(n, m) for f over [a, b], see
// [Romberg].
func (f *Function[T]) Romberg(a, b float64, n, m int) (T, error) {
	return Romberg(f.Eval, a, b, n, m)
}

// RombergNaive is like [Function.Romberg] but uses the recursive definition,
// see [RombergNaive].
func (f *Function[T]) RombergNaive(a, b float64, n, m int) (T, error) {
	return RombergNaive(f.Eval, a, b, n, m)
}

// Derivative approximates f'(a) with a centered difference, see [Derivative].
func (f *Function[T]) Derivative(a float64) T {
	return Derivative(f.Eval, a)
}
