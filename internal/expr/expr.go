// Package expr compiles textual expressions in one variable, such as
// "exp(-x*x)", into Go functions.
package expr

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Variable is the name of the free variable of an expression.
const Variable = "x"

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Expression is a compiled expression in the variable x.
//
// An Expression is not safe for concurrent use.
type Expression struct {
	src    string
	expr   *govaluate.EvaluableExpression
	params map[string]interface{}
	err    error
}

// Compile parses src. Besides x, expressions may refer to the constants pi
// and e and call the functions sin, cos, tan, asin, acos, atan, sinh, cosh,
// tanh, exp, log, log10, sqrt, abs and pow. Exponentiation is written as **.
//
// Negation binds tighter than exponentiation: -x**2 is (-x)², so write the
// Gaussian as exp(-x*x) or exp(-(x**2)).
func Compile(src string) (*Expression, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, fmt.Errorf("empty expression")
	}
	e, err := govaluate.NewEvaluableExpressionWithFunctions(trimmed, functions)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", src, err)
	}
	var unknown []string
	for _, v := range e.Vars() {
		if _, ok := constants[v]; !ok && v != Variable {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("parsing %q: unknown variables %s", src, strings.Join(unknown, ", "))
	}
	params := make(map[string]interface{}, len(constants)+1)
	for k, v := range constants {
		params[k] = v
	}
	params[Variable] = 0.0
	return &Expression{src: src, expr: e, params: params}, nil
}

// Clone returns a copy of e with its own parameters and no recorded error.
// The parsed expression is shared.
func (e *Expression) Clone() *Expression {
	params := make(map[string]interface{}, len(e.params))
	for k, v := range e.params {
		params[k] = v
	}
	return &Expression{src: e.src, expr: e.expr, params: params}
}

// String returns the source of the expression.
func (e *Expression) String() string {
	return e.src
}

// Eval evaluates the expression at x.
func (e *Expression) Eval(x float64) (float64, error) {
	e.params[Variable] = x
	v, err := e.expr.Evaluate(e.params)
	if err != nil {
		return math.NaN(), fmt.Errorf("evaluating %q at x=%g: %w", e.src, x, err)
	}
	f, err := toFloat(v)
	if err != nil {
		return math.NaN(), fmt.Errorf("evaluating %q at x=%g: %w", e.src, x, err)
	}
	return f, nil
}

// Func returns the expression as a function. Evaluation errors result in NaN;
// the first such error is reported by [Expression.Err].
func (e *Expression) Func() func(float64) float64 {
	return func(x float64) float64 {
		v, err := e.Eval(x)
		if err != nil && e.err == nil {
			e.err = err
		}
		return v
	}
}

// Err returns the first error encountered by a function returned from
// [Expression.Func].
func (e *Expression) Err() error {
	return e.err
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow takes 2 arguments, got %d", len(args))
		}
		a, err := toFloat(args[0])
		if err != nil {
			return nil, err
		}
		b, err := toFloat(args[1])
		if err != nil {
			return nil, err
		}
		return math.Pow(a, b), nil
	},
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("function takes 1 argument, got %d", len(args))
		}
		x, err := toFloat(args[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func toFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(t, 64)
	default:
		return math.NaN(), fmt.Errorf("expression didn't produce a number: %T", v)
	}
}
