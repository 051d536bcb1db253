// internal/resample/linear.go
package resample

import "math"

// Linear resamples values onto n evenly spaced positions of the index axis [0, len-1].
//
// Fewer than 2 points: the single point is replicated (zero-filled if none).
// Results are rounded to 3 decimals.
func Linear(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)

	switch len(values) {
	case 0:
		return out
	case 1:
		v := round3(values[0])
		for i := range out {
			out[i] = v
		}
		return out
	}

	last := float64(len(values) - 1)
	for k := 0; k < n; k++ {
		var pos float64
		if n > 1 {
			pos = float64(k) * last / float64(n-1)
		}
		out[k] = round3(interpAt(values, pos))
	}
	return out
}

// interpAt evaluates the piecewise-linear curve through values at pos.
// Positions outside [0, len-1] extrapolate the edge segment.
func interpAt(values []float64, pos float64) float64 {
	i := int(math.Floor(pos))
	if i < 0 {
		i = 0
	}
	if i > len(values)-2 {
		i = len(values) - 2
	}
	frac := pos - float64(i)
	return values[i] + frac*(values[i+1]-values[i])
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
