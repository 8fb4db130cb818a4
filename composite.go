package analytic

// DefaultPanels is a reasonable default number of panels for [Trapezoid] and
// [Simpson].
const DefaultPanels = 100

// Trapezoid integrates f over [a, b] using the composite trapezoid rule with n
// panels of equal width.
//
// Each panel is evaluated on its own, so interior points are sampled twice,
// for a total of 2n evaluations of f. It returns [ErrInvalidPanels] if n < 1.
func Trapezoid[T Scalar](f func(float64) T, a, b float64, n int) (T, error) {
	if n < 1 {
		return 0, ErrInvalidPanels
	}
	h := (b - a) / float64(n)
	var sum T
	for i := 1; i <= n; i++ {
		sum += f(a+h*float64(i-1)) + f(a+h*float64(i))
	}
	return scale(h/2, sum), nil
}

// Simpson integrates f over [a, b] using the composite Simpson rule with n
// panels of equal width.
//
// Interior points with an even index are weighted by 2, those with an odd
// index by 4. The rule needs pairs of panels: it returns [ErrInvalidPanels] if
// n < 1 and [ErrOddPanels] if n is odd.
func Simpson[T Scalar](f func(float64) T, a, b float64, n int) (T, error) {
	if n < 1 {
		return 0, ErrInvalidPanels
	}
	if n%2 != 0 {
		return 0, ErrOddPanels
	}
	h := (b - a) / float64(n)
	var even, odd T
	for i := 2; i < n; i += 2 {
		even += f(a + float64(i)*h)
	}
	for i := 1; i < n; i += 2 {
		odd += f(a + float64(i)*h)
	}
	sum := f(a) + scale(2, even) + scale(4, odd) + f(b)
	return scale(h/3, sum), nil
}
