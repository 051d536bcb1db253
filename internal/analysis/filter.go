// internal/analysis/filter.go
package analysis

// SmoothTaps is the window length of both display smoothing stages.
const SmoothTaps = 13

// movingAverage is a running mean over the last size values.
type movingAverage struct {
	size   int
	values []float64
}

func (m *movingAverage) filter(v float64) float64 {
	m.values = append(m.values, v)
	if len(m.values) > m.size {
		m.values = m.values[1:]
	}
	return mean(m.values)
}

func (m *movingAverage) clear() { m.values = m.values[:0] }

// weightedMovingAverage weights the i-th oldest retained value by 1000+i,
// so newer values count slightly more.
type weightedMovingAverage struct {
	size   int
	values []float64
}

func (w *weightedMovingAverage) filter(v float64) float64 {
	w.values = append(w.values, v)
	if len(w.values) > w.size {
		w.values = w.values[1:]
	}

	var sum, total float64
	for i, x := range w.values {
		weight := float64(1000 + i)
		sum += x * weight
		total += weight
	}
	return sum / total
}

func (w *weightedMovingAverage) clear() { w.values = w.values[:0] }

// smoother chains the weighted stage into the plain stage.
// Filter state carries across cycles until cleared.
type smoother struct {
	wma weightedMovingAverage
	ma  movingAverage
}

func newSmoother() *smoother {
	return &smoother{
		wma: weightedMovingAverage{size: SmoothTaps},
		ma:  movingAverage{size: SmoothTaps},
	}
}

func (s *smoother) apply(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = s.ma.filter(s.wma.filter(v))
	}
	return out
}

func (s *smoother) clear() {
	s.wma.clear()
	s.ma.clear()
}
