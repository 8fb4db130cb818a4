package analytic

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/integrate/quad"
)

func TestQuadSquare(t *testing.T) {
	for n := 2; n <= 20; n++ {
		got, err := Quad(square, 0, 1, n)
		if err != nil {
			t.Fatal(err)
		}
		assertNear(t, got, 1.0/3.0, 1e-9)
	}
}

func TestQuadPolynomialDegree(t *testing.T) {
	// An n-point rule is exact for polynomials of degree 2n-1.
	for n := 1; n <= 10; n++ {
		deg := 2*n - 1
		f := func(x float64) float64 { return math.Pow(x, float64(deg)) + 1 }
		got, err := Quad(f, 0, 2, n)
		if err != nil {
			t.Fatal(err)
		}
		want := math.Pow(2, float64(deg+1))/float64(deg+1) + 2
		assertNear(t, got, want, 1e-10*want)
	}
}

func TestQuadMatchesGonum(t *testing.T) {
	fns := []struct {
		name string
		f    func(float64) float64
		a, b float64
	}{
		{"sin", math.Sin, 0, math.Pi},
		{"exp", math.Exp, -1, 2},
		{"runge", func(x float64) float64 { return 1 / (1 + 25*x*x) }, -1, 1},
		{"log", math.Log, 1, 10},
	}
	for _, tc := range fns {
		t.Run(tc.name, func(t *testing.T) {
			for _, n := range []int{3, 8, 25} {
				got, err := Quad(tc.f, tc.a, tc.b, n)
				if err != nil {
					t.Fatal(err)
				}
				want := quad.Fixed(tc.f, tc.a, tc.b, n, quad.Legendre{}, 1)
				assertNear(t, got, want, 1e-11)
			}
		})
	}
}

func TestQuadComplex(t *testing.T) {
	// ∫₀¹ (x + i·x²) dx = 1/2 + i/3
	f := func(x float64) complex128 { return complex(x, x*x) }
	got, err := Quad(f, 0, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, real(got), 0.5, 1e-14)
	assertNear(t, imag(got), 1.0/3.0, 1e-14)
}

func TestQuadFloat32(t *testing.T) {
	f := func(x float64) float32 { return float32(x * x) }
	got, err := Quad(f, 0, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, float64(got), 9, 1e-4)
}

type celsius float64

func TestQuadNamedScalar(t *testing.T) {
	f := func(x float64) celsius { return celsius(2 * x) }
	got, err := Quad(f, 0, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, float64(got), 1, 1e-14)
}

func TestQuadInvalidOrder(t *testing.T) {
	if _, err := Quad(square, 0, 1, 0); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("got error %v, want %v", err, ErrInvalidOrder)
	}
}
