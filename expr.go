package analytic

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Expr is a symbolic expression in a single variable.
//
// The numerical methods of this package never use Expr. It exists so that a
// [Function] can carry an exact description of itself, from which derivatives
// and integrals can be computed analytically. Expressions have to be
// constructed explicitly; they are never derived from Go code.
type Expr interface {
	// Derivative returns the derivative with respect to the variable.
	Derivative() Expr
	// Antiderivative returns an indefinite integral, or an error matching
	// [ErrNoAntiderivative] if none is known.
	Antiderivative() (Expr, error)
	// Eval substitutes x for the variable and evaluates the expression. The
	// result may be complex.
	Eval(x float64) (complex128, error)
	// LaTeX renders the expression as LaTeX math.
	LaTeX() string
	String() string
}

// Poly is a polynomial in x with real coefficients, stored in increasing
// order of degree: Poly{c0, c1, c2} is c0 + c1·x + c2·x².
//
// Poly implements [Expr]. Derivatives and antiderivatives of polynomials are
// polynomials, so they're always exact.
type Poly []float64

var _ Expr = Poly(nil)

// Degree returns the degree of the polynomial, ignoring trailing zero
// coefficients. The zero polynomial has degree -1.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// At evaluates the polynomial at x using Horner's method.
func (p Poly) At(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// Eval implements [Expr].
func (p Poly) Eval(x float64) (complex128, error) {
	y := p.At(x)
	if math.IsNaN(y) {
		return cmplx.NaN(), fmt.Errorf("polynomial %s is undefined at %g", p, x)
	}
	return complex(y, 0), nil
}

// Derivative implements [Expr].
func (p Poly) Derivative() Expr {
	return p.Deriv()
}

// Deriv is like [Poly.Derivative] but returns a Poly.
func (p Poly) Deriv() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = float64(i) * p[i]
	}
	return out
}

// Antiderivative implements [Expr]. The constant of integration is zero.
func (p Poly) Antiderivative() (Expr, error) {
	return p.Integral(), nil
}

// Integral is like [Poly.Antiderivative] but returns a Poly.
func (p Poly) Integral() Poly {
	out := make(Poly, len(p)+1)
	for i, c := range p {
		out[i+1] = c / float64(i+1)
	}
	return out
}

// String implements [Expr], writing terms in decreasing degree, e.g.
// "3*x^2 - x + 1".
func (p Poly) String() string {
	return p.format(func(sb *strings.Builder, deg int) {
		sb.WriteString("x")
		if deg > 1 {
			sb.WriteString("^")
			sb.WriteString(strconv.Itoa(deg))
		}
	}, "*")
}

// LaTeX implements [Expr], e.g. "3 x^{2} - x + 1".
func (p Poly) LaTeX() string {
	return p.format(func(sb *strings.Builder, deg int) {
		sb.WriteString("x")
		if deg > 1 {
			sb.WriteString("^{")
			sb.WriteString(strconv.Itoa(deg))
			sb.WriteString("}")
		}
	}, " ")
}

func (p Poly) format(power func(sb *strings.Builder, deg int), mul string) string {
	sb := &strings.Builder{}
	first := true
	for deg := p.Degree(); deg >= 0; deg-- {
		c := p[deg]
		if c == 0 {
			continue
		}
		if first {
			if c < 0 {
				sb.WriteString("-")
			}
		} else if c < 0 {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		first = false
		abs := math.Abs(c)
		if abs != 1 || deg == 0 {
			sb.WriteString(strconv.FormatFloat(abs, 'g', -1, 64))
			if deg > 0 {
				sb.WriteString(mul)
			}
		}
		if deg > 0 {
			power(sb, deg)
		}
	}
	if first {
		return "0"
	}
	return sb.String()
}
