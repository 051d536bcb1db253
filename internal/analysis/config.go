// internal/analysis/config.go
package analysis

// Window geometry at the canonical 50 Hz rate.
const (
	// WindowSize is the number of PPG samples analyzed per cycle (2 s).
	WindowSize = 100

	// Overlap is the number of samples carried into the next cycle (1 s).
	Overlap = 50
)

// Thresholds drive detrend order selection from the accelerometer noise score.
type Thresholds struct {
	Low  float64 // below: motion negligible, order 2
	Mid  float64 // [Low, Mid): order 5; at or above: high-noise branch
	High float64 // at or above, with HR >= HighHR: order 25

	// HighHR is the reported heart rate at which aggressive detrending is allowed.
	HighHR float64
}

// Config is the analyzer tuning.
// Several of these vary per deployment and are set from YAML.
type Config struct {
	// CalHRTime is the number of worn, low-noise cycles before HR is reported.
	CalHRTime int

	Thresholds Thresholds

	// Valid beat interval bounds in seconds (inclusive).
	MinInterval          float64
	MinIntervalHighNoise float64
	MaxInterval          float64

	// SampleInterval is the seconds per resampled point.
	SampleInterval float64

	PeakDistance int
	MaxPeaks     int

	// HistoryCap bounds the accepted-BPM history (FIFO).
	HistoryCap int

	// MaxDeviation is the relative deviation from the reported HR a candidate
	// must stay under once the history is full.
	MaxDeviation float64

	// RelockAfter force-accepts the candidate that would be the RelockAfter-th
	// consecutive rejection. <= 0 disables.
	RelockAfter int
}

// DefaultThresholds returns the canonical noise thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 5.0, Mid: 10.0, High: 15.0, HighHR: 140}
}

// DefaultConfig returns the canonical pipeline tuning.
func DefaultConfig() Config {
	return Config{
		CalHRTime:            5,
		Thresholds:           DefaultThresholds(),
		MinInterval:          0.20,
		MinIntervalHighNoise: 0.25,
		MaxInterval:          1.5,
		SampleInterval:       0.02,
		PeakDistance:         12,
		MaxPeaks:             8,
		HistoryCap:           15,
		MaxDeviation:         0.20,
		RelockAfter:          10,
	}
}
