package analytic

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Scalar describes the values a [Function] may produce: real or complex
// floating point numbers.
type Scalar interface {
	constraints.Float | constraints.Complex
}

// fromFloat converts c to T. Go doesn't allow converting a float to a type
// parameter whose type set includes complex types, so we go through a type
// switch, with reflection as a fallback for named types.
func fromFloat[T Scalar](c float64) T {
	var z T
	switch p := any(&z).(type) {
	case *float64:
		*p = c
	case *float32:
		*p = float32(c)
	case *complex128:
		*p = complex(c, 0)
	case *complex64:
		*p = complex64(complex(c, 0))
	default:
		v := reflect.ValueOf(&z).Elem()
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			v.SetFloat(c)
		case reflect.Complex64, reflect.Complex128:
			v.SetComplex(complex(c, 0))
		default:
			panic("unreachable")
		}
	}
	return z
}

// scale returns c·v.
func scale[T Scalar](c float64, v T) T {
	return fromFloat[T](c) * v
}
