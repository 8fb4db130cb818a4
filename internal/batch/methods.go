package batch

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/calclab/analytic"
)

// Integration methods.
const (
	MethodTrapezoid = "trapezoid"
	MethodSimpson   = "simpson"
	MethodGauss     = "gauss"
	MethodRomberg   = "romberg"
)

// Methods lists the integration methods in the order reports show them.
var Methods = []string{MethodTrapezoid, MethodSimpson, MethodGauss, MethodRomberg}

// Default parameters per method.
const (
	DefaultGaussOrder    = 10
	DefaultRombergLevel  = 10
	DefaultRombergColumn = 4
)

// IsMethod reports whether name is a known integration method.
func IsMethod(name string) bool {
	return slices.Contains(Methods, name)
}

// ErrNotFinite is returned when a computation produces NaN or an infinity,
// for example when the integrand has a pole inside the interval.
var ErrNotFinite = errors.New("result is not finite")

// checkFinite returns v, or an error wrapping [ErrNotFinite] if v is NaN or
// infinite.
func checkFinite(v float64, err error) (float64, error) {
	if err != nil {
		return v, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, fmt.Errorf("%w: %g", ErrNotFinite, v)
	}
	return v, nil
}

// Params returns the effective n and m for method. A zero n and a negative m
// select the method's defaults; m = 0 is a valid Romberg column. m is only
// meaningful for Romberg.
func Params(method string, n, m int) (int, int) {
	switch method {
	case MethodTrapezoid, MethodSimpson:
		if n == 0 {
			n = analytic.DefaultPanels
		}
		return n, 0
	case MethodGauss:
		if n == 0 {
			n = DefaultGaussOrder
		}
		return n, 0
	case MethodRomberg:
		if n == 0 {
			n = DefaultRombergLevel
		}
		if m < 0 {
			m = min(DefaultRombergColumn, n)
		}
		return n, m
	}
	return n, m
}

// Integrate integrates f over [a, b] with the named method. A zero n and a
// negative m select the defaults, see [Params]. Results that are NaN or
// infinite are reported as [ErrNotFinite].
func Integrate(f func(float64) float64, method string, a, b float64, n, m int) (float64, error) {
	n, m = Params(method, n, m)
	switch method {
	case MethodTrapezoid:
		return checkFinite(analytic.Trapezoid(f, a, b, n))
	case MethodSimpson:
		return checkFinite(analytic.Simpson(f, a, b, n))
	case MethodGauss:
		return checkFinite(analytic.Quad(f, a, b, n))
	case MethodRomberg:
		return checkFinite(analytic.Romberg(f, a, b, n, m))
	default:
		return 0, fmt.Errorf("unknown integration method %q", method)
	}
}

// Derive approximates f'(at), see [analytic.Derivative]. Results that are NaN
// or infinite are reported as [ErrNotFinite].
func Derive(f func(float64) float64, at float64) (float64, error) {
	return checkFinite(analytic.Derivative(f, at), nil)
}
