// internal/analysis/analyzer.go
package analysis

import "math"

// State is the wear/stabilization state of a measurement session.
type State uint8

const (
	// StateNotWorn: the PPG history sums to zero.
	StateNotWorn State = iota

	// StateStabilizing: worn, fewer than CalHRTime cycles completed.
	StateStabilizing

	// StateActive: worn and stabilized; heart rate is reported.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateNotWorn:
		return "not_worn"
	case StateStabilizing:
		return "stabilizing"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name (JSON, YAML).
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of one analysis cycle.
type Result struct {
	HeartRate float64
	State     State

	// Detrended is empty when no analysis window was available.
	Detrended []float64
	Peaks     []int

	// Filtered is the smoothed first second (Overlap samples) of Detrended.
	Filtered []float64

	Order     int
	Noise     float64
	HighNoise bool

	StableCycles int
	Accepted     int
	Rejected     int

	// Err is non-nil when the cycle could not be analyzed (e.g. ErrSingularFit).
	// HeartRate then carries the previous estimate.
	Err error
}

// Analyzer owns the sliding-window heart-rate state for one session.
// It is not safe for concurrent use; the session serializes cycles.
type Analyzer struct {
	cfg Config

	ppg    []float64
	smooth *smoother
	bpm    *bpmHistory
	hr     float64
	stable int
	state  State
	streak int

	detrend func(ppg []float64, order int) ([]float64, error)
}

// NewAnalyzer creates an analyzer in StateNotWorn.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		ppg:     make([]float64, 0, 2*WindowSize),
		smooth:  newSmoother(),
		bpm:     newBPMHistory(cfg.HistoryCap),
		state:   StateNotWorn,
		detrend: Detrend,
	}
}

// HeartRate returns the current reported heart rate.
func (a *Analyzer) HeartRate() float64 { return a.hr }

// State returns the current wear/stabilization state.
func (a *Analyzer) State() State { return a.state }

// History returns a copy of the accepted BPM candidates, oldest first.
func (a *Analyzer) History() []float64 { return a.bpm.snapshot() }

// Reset discards all session state.
func (a *Analyzer) Reset() {
	a.ppg = a.ppg[:0]
	a.markNotWorn()
}

// Update runs one cycle over a new resampled PPG window and the concurrent
// accelerometer window.
func (a *Analyzer) Update(ppg []float64, acc [][3]float64) Result {
	a.ppg = append(a.ppg, ppg...)
	if len(a.ppg) >= WindowSize {
		defer a.trim()
	}

	if sum(a.ppg) == 0 {
		a.markNotWorn()
		return Result{State: StateNotWorn}
	}
	if a.state == StateNotWorn {
		a.state = StateStabilizing
	}

	if len(a.ppg) < WindowSize {
		return a.result(Result{})
	}

	noise := NoiseScore(acc)
	res := Result{
		Noise:     noise,
		HighNoise: noise >= a.cfg.Thresholds.Mid,
		Order:     SelectOrder(noise, a.hr, a.cfg.Thresholds),
	}

	detrended, err := a.detrend(a.ppg, res.Order)
	if err != nil {
		res.Err = err
		return a.result(res)
	}
	res.Detrended = detrended
	res.Filtered = a.smooth.apply(detrended[:Overlap])
	res.Peaks = FindPeaks(detrended, PeakHeight(detrended), a.cfg.PeakDistance, a.cfg.MaxPeaks)

	// motion holds the stabilization counter
	if !res.HighNoise && a.stable < a.cfg.CalHRTime {
		a.stable++
	}
	if a.stable >= a.cfg.CalHRTime {
		a.state = StateActive
	} else {
		a.state = StateStabilizing
	}

	if a.state == StateActive {
		res.Accepted, res.Rejected = a.aggregate(res.Peaks, res.HighNoise)
	}

	return a.result(res)
}

// aggregate turns adjacent peak gaps into BPM candidates and offers them.
func (a *Analyzer) aggregate(peaks []int, highNoise bool) (accepted, rejected int) {
	minInterval := a.cfg.MinInterval
	if highNoise {
		minInterval = a.cfg.MinIntervalHighNoise
	}

	for i := 1; i < len(peaks); i++ {
		interval := float64(peaks[i]-peaks[i-1]) * a.cfg.SampleInterval
		if interval < minInterval || interval > a.cfg.MaxInterval {
			continue
		}
		if a.offer(60 / interval) {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected
}

// offer accepts a candidate while the history is filling, or when it is
// within MaxDeviation of the reported heart rate.
func (a *Analyzer) offer(bpm float64) bool {
	if !a.bpm.full() || (a.hr > 0 && math.Abs(bpm-a.hr)/a.hr < a.cfg.MaxDeviation) {
		a.accept(bpm)
		return true
	}

	a.streak++
	if a.cfg.RelockAfter > 0 && a.streak >= a.cfg.RelockAfter {
		a.accept(bpm)
		return true
	}
	return false
}

func (a *Analyzer) accept(bpm float64) {
	a.bpm.push(bpm)
	a.hr = a.bpm.mean()
	a.streak = 0
}

func (a *Analyzer) markNotWorn() {
	a.hr = 0
	a.bpm.clear()
	a.smooth.clear()
	a.stable = 0
	a.streak = 0
	a.state = StateNotWorn
}

// trim keeps the most recent Overlap samples for the next cycle.
func (a *Analyzer) trim() {
	if len(a.ppg) <= Overlap {
		return
	}
	n := copy(a.ppg, a.ppg[len(a.ppg)-Overlap:])
	a.ppg = a.ppg[:n]
}

func (a *Analyzer) result(r Result) Result {
	r.HeartRate = a.hr
	r.State = a.state
	r.StableCycles = a.stable
	return r
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, v := range xs {
		total += v
	}
	return total
}
