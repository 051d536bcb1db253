// internal/session/builder.go
package session

import (
	"time"

	"github.com/tamzrod/ppg-monitor/internal/analysis"
	cfg "github.com/tamzrod/ppg-monitor/internal/config"
)

// Build constructs a Session from a normalized device config.
// The window rate follows from the cycle geometry: points per interval.
func Build(d cfg.DeviceConfig) (*Session, error) {
	interval := time.Duration(d.Cycle.IntervalMs) * time.Millisecond

	ac := AnalysisConfig(d.Analysis)
	if d.Cycle.Points > 0 {
		ac.SampleInterval = interval.Seconds() / float64(d.Cycle.Points)
	}

	return New(Config{
		DeviceID:   d.ID,
		Interval:   interval,
		Points:     d.Cycle.Points,
		MinSamples: d.Cycle.MinSamples,
		Analysis:   ac,
	})
}

// AnalysisConfig maps the YAML analysis block onto analysis.Config.
// Zero values keep the analysis defaults.
func AnalysisConfig(a cfg.AnalysisConfig) analysis.Config {
	out := analysis.DefaultConfig()

	if a.CalHRTime != nil {
		out.CalHRTime = *a.CalHRTime
	}

	setF := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	setI := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}

	setF(&out.Thresholds.Low, a.NoiseLow)
	setF(&out.Thresholds.Mid, a.NoiseMid)
	setF(&out.Thresholds.High, a.NoiseHigh)
	setF(&out.Thresholds.HighHR, a.HighHR)
	setF(&out.MinInterval, a.MinInterval)
	setF(&out.MinIntervalHighNoise, a.MinIntervalHighNoise)
	setF(&out.MaxInterval, a.MaxInterval)
	setF(&out.MaxDeviation, a.MaxDeviation)
	setI(&out.PeakDistance, a.PeakDistance)
	setI(&out.MaxPeaks, a.MaxPeaks)
	setI(&out.HistoryCap, a.HistoryCap)

	switch {
	case a.RelockAfter > 0:
		out.RelockAfter = a.RelockAfter
	case a.RelockAfter < 0:
		out.RelockAfter = 0
	}

	return out
}
