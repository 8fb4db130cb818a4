package analytic

import "math"

// MaxRombergLevel is the largest subdivision level accepted by [Romberg] and
// [RombergNaive]. Level n evaluates f at 2ⁿ+1 points.
const MaxRombergLevel = 30

// Romberg returns the entry R(n, m) of the Romberg table of f over [a, b].
//
// Column 0 holds trapezoid estimates at 2ⁿ panels, computed incrementally:
//
//	R(0, 0) = h·(f(a) + f(b)),                        h = b-a
//	R(n, 0) = ½·R(n-1, 0) + h·Σ f(a + (2i-1)·h),      h = (b-a)/2ⁿ, i = 1…2ⁿ⁻¹
//
// Further columns apply Richardson extrapolation:
//
//	R(n, m) = (4ᵐ·R(n, m-1) - R(n-1, m-1)) / (4ᵐ - 1)
//
// Note that the first row weighs the end points with h rather than h/2. The
// surplus halves with every level, so column 0 still converges to the
// integral, at first order.
//
// The table is filled row by row, evaluating f once per point. The results
// are identical to those of [RombergNaive].
//
// Romberg returns [ErrInvalidRombergIndex] unless 0 ≤ m ≤ n and
// [ErrDepthLimit] if n > [MaxRombergLevel].
func Romberg[T Scalar](f func(float64) T, a, b float64, n, m int) (T, error) {
	if err := checkRomberg(n, m); err != nil {
		return 0, err
	}
	prev := make([]T, 0, m+1)
	cur := make([]T, 0, m+1)
	for level := 0; level <= n; level++ {
		cur = cur[:0]
		if level == 0 {
			cur = append(cur, rombergFirst(f, a, b))
		} else {
			cur = append(cur, rombergRefine(f, a, b, level, prev[0]))
		}
		for j := 1; j <= min(level, m); j++ {
			cur = append(cur, rombergExtrapolate(j, cur[j-1], prev[j-1]))
		}
		prev, cur = cur, prev
	}
	return prev[m], nil
}

// RombergTable returns the rows 0 through n of the Romberg table of f over
// [a, b]. Row i has i+1 entries. See [Romberg].
func RombergTable[T Scalar](f func(float64) T, a, b float64, n int) ([][]T, error) {
	if err := checkRomberg(n, 0); err != nil {
		return nil, err
	}
	rows := make([][]T, n+1)
	for i := range rows {
		row := make([]T, i+1)
		if i == 0 {
			row[0] = rombergFirst(f, a, b)
		} else {
			row[0] = rombergRefine(f, a, b, i, rows[i-1][0])
		}
		for j := 1; j <= i; j++ {
			row[j] = rombergExtrapolate(j, row[j-1], rows[i-1][j-1])
		}
		rows[i] = row
	}
	return rows, nil
}

// RombergNaive computes R(n, m) like [Romberg], but straight from the
// recursive definition. Nothing is memoized, so the lower entries are
// recomputed over and over and the cost grows exponentially with n and m.
// Prefer [Romberg]; this exists mostly as a reference.
func RombergNaive[T Scalar](f func(float64) T, a, b float64, n, m int) (T, error) {
	if err := checkRomberg(n, m); err != nil {
		return 0, err
	}
	return rombergNaive(f, a, b, n, m), nil
}

func rombergNaive[T Scalar](f func(float64) T, a, b float64, n, m int) T {
	switch {
	case n == 0 && m == 0:
		return rombergFirst(f, a, b)
	case m == 0:
		return rombergRefine(f, a, b, n, rombergNaive(f, a, b, n-1, 0))
	default:
		return rombergExtrapolate(m,
			rombergNaive(f, a, b, n, m-1),
			rombergNaive(f, a, b, n-1, m-1))
	}
}

func checkRomberg(n, m int) error {
	if n < 0 || m < 0 || m > n {
		return ErrInvalidRombergIndex
	}
	if n > MaxRombergLevel {
		return ErrDepthLimit
	}
	return nil
}

func rombergFirst[T Scalar](f func(float64) T, a, b float64) T {
	return scale(b-a, f(a)+f(b))
}

// rombergRefine computes R(n, 0) from R(n-1, 0) by sampling the new
// midpoints.
func rombergRefine[T Scalar](f func(float64) T, a, b float64, n int, prev T) T {
	h := math.Ldexp(b-a, -n)
	var sum T
	for i := 1; i <= 1<<(n-1); i++ {
		sum += f(a + h*float64(2*i-1))
	}
	return scale(0.5, prev) + scale(h, sum)
}

// rombergExtrapolate computes R(n, m) from R(n, m-1) and R(n-1, m-1).
func rombergExtrapolate[T Scalar](m int, hi, lo T) T {
	p := math.Ldexp(1, 2*m)
	return scale(1/(p-1), scale(p, hi)-lo)
}
