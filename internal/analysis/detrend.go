// internal/analysis/detrend.go
package analysis

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientHistory means fewer than WindowSize samples are available.
	ErrInsufficientHistory = errors.New("analysis: insufficient history")

	// ErrSingularFit means the polynomial normal equations have no unique solution.
	ErrSingularFit = errors.New("analysis: singular fit")
)

// singularTol is the relative column residual below which the basis is
// considered linearly dependent.
const singularTol = 1e-10

// Detrend removes a least-squares polynomial baseline of the given order from
// the first WindowSize samples of ppg. The result has exactly WindowSize values
// rounded to 4 decimals.
func Detrend(ppg []float64, order int) ([]float64, error) {
	if len(ppg) < WindowSize {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientHistory, len(ppg), WindowSize)
	}
	if order < 0 || order+1 > WindowSize {
		return nil, fmt.Errorf("%w: order %d over %d points", ErrSingularFit, order, WindowSize)
	}

	y := ppg[:WindowSize]

	coef, err := fitPolynomial(y, order)
	if err != nil {
		return nil, err
	}

	out := make([]float64, WindowSize)
	for i, v := range y {
		out[i] = round4(v - evalPoly(coef, abscissa(i, WindowSize)))
	}
	return out, nil
}

// abscissa maps sample position i+1 of 1..n onto [-1, 1].
// An affine change of the fit variable spans the same polynomial space, so the
// fitted baseline equals the fit over raw positions 1..n.
func abscissa(i, n int) float64 {
	mid := float64(n+1) / 2
	half := float64(n-1) / 2
	return (float64(i+1) - mid) / half
}

// fitPolynomial solves the normal equations (XᵗX)a = Xᵗy for the Vandermonde
// basis 1, t, …, t^order. X is factored as QR (modified Gram-Schmidt, two
// passes), so XᵗX = RᵗR and the system reduces to Ra = Qᵗy.
func fitPolynomial(y []float64, order int) ([]float64, error) {
	n := len(y)
	m := order + 1

	q := make([][]float64, m)
	r := make([][]float64, m)
	for j := range r {
		r[j] = make([]float64, m)
	}

	for j := 0; j < m; j++ {
		col := make([]float64, n)
		for i := range col {
			col[i] = math.Pow(abscissa(i, n), float64(j))
		}
		norm0 := norm(col)

		for pass := 0; pass < 2; pass++ {
			for k := 0; k < j; k++ {
				d := dot(q[k], col)
				r[k][j] += d
				for i := range col {
					col[i] -= d * q[k][i]
				}
			}
		}

		rr := norm(col)
		if norm0 == 0 || rr <= singularTol*norm0 {
			return nil, fmt.Errorf("%w: basis column %d is dependent", ErrSingularFit, j)
		}
		r[j][j] = rr
		for i := range col {
			col[i] /= rr
		}
		q[j] = col
	}

	a := make([]float64, m)
	for j := m - 1; j >= 0; j-- {
		s := dot(q[j], y)
		for k := j + 1; k < m; k++ {
			s -= r[j][k] * a[k]
		}
		a[j] = s / r[j][j]
	}

	for _, c := range a {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrSingularFit)
		}
	}
	return a, nil
}

// evalPoly evaluates coef[0] + coef[1]·t + … by Horner's rule.
func evalPoly(coef []float64, t float64) float64 {
	v := 0.0
	for j := len(coef) - 1; j >= 0; j-- {
		v = v*t + coef[j]
	}
	return v
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}
