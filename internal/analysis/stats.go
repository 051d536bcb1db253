// internal/analysis/stats.go
package analysis

import "math"

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range xs {
		total += v
	}
	return total / float64(len(xs))
}

// stdDev is the population standard deviation.
func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, v := range xs {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// NoiseScore is the sum of the per-axis standard deviations of an accelerometer window.
func NoiseScore(acc [][3]float64) float64 {
	if len(acc) == 0 {
		return 0
	}
	axis := make([]float64, len(acc))
	var score float64
	for a := 0; a < 3; a++ {
		for i, v := range acc {
			axis[i] = v[a]
		}
		score += stdDev(axis)
	}
	return score
}

// SelectOrder picks the detrend polynomial order for a noise score.
func SelectOrder(noise, lastHR float64, th Thresholds) int {
	switch {
	case noise < th.Low:
		return 2
	case noise < th.Mid:
		return 5
	case noise >= th.High && lastHR >= th.HighHR:
		return 25
	default:
		return 7
	}
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
