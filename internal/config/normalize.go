// internal/config/normalize.go
package config

import "fmt"

// Defaults applied by Normalize.
const (
	DefaultNATSURL   = "nats://127.0.0.1:4222"
	DefaultNATSName  = "ppg-monitor"
	DefaultTimeoutMs = 3000

	DefaultIntervalMs = 1000
	DefaultPoints     = 50
	DefaultMinSamples = 10

	DeviceNameMaxChars = 16

	StatusProtocolModbus = "modbus"
	StatusProtocolIngest = "ingest"
)

// Device-control strings sent on start/stop when none are configured.
var (
	DefaultStartCommands = []string{"\nset POWER_1V8 1\n", "\nset ppg_enable 1\n", "\nsetup ppg\n"}
	DefaultStopCommands  = []string{"\nset ppg_enable 0\n", "\nsetup ppg\n"}
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	n := &cfg.Monitor.NATS
	if n.URL == "" {
		n.URL = DefaultNATSURL
	}
	if n.Name == "" {
		n.Name = DefaultNATSName
	}
	if n.TimeoutMs == 0 {
		n.TimeoutMs = DefaultTimeoutMs
	}

	for di := range cfg.Monitor.Devices {
		d := &cfg.Monitor.Devices[di]

		// Truncate device_name (ASCII already validated)
		if len(d.DeviceName) > DeviceNameMaxChars {
			d.DeviceName = d.DeviceName[:DeviceNameMaxChars]
		}

		// ---- source ----
		if d.Source.CommandSubject == "" {
			d.Source.CommandSubject = fmt.Sprintf("hr.%s.command", d.ID)
		}
		if d.Source.ResultSubject == "" {
			d.Source.ResultSubject = fmt.Sprintf("hr.%s.cycle", d.ID)
		}
		if d.Source.StartCommands == nil {
			d.Source.StartCommands = append([]string(nil), DefaultStartCommands...)
		}
		if d.Source.StopCommands == nil {
			d.Source.StopCommands = append([]string(nil), DefaultStopCommands...)
		}

		// ---- cycle ----
		if d.Cycle.IntervalMs == 0 {
			d.Cycle.IntervalMs = DefaultIntervalMs
		}
		if d.Cycle.Points == 0 {
			d.Cycle.Points = DefaultPoints
		}
		if d.Cycle.MinSamples == 0 {
			d.Cycle.MinSamples = DefaultMinSamples
		}

		// ---- analysis ----
		d.Analysis = withAnalysisDefaults(d.Analysis)

		// ---- status ----
		if d.Status != nil {
			if d.Status.Protocol == "" {
				d.Status.Protocol = StatusProtocolModbus
			}
			if d.Status.TimeoutMs == 0 {
				d.Status.TimeoutMs = DefaultTimeoutMs
			}
		}
	}
}

// withAnalysisDefaults returns a copy with zero values replaced by the
// canonical tuning. Pure: used by both Validate and Normalize.
func withAnalysisDefaults(a AnalysisConfig) AnalysisConfig {
	if a.CalHRTime == nil {
		v := 5
		a.CalHRTime = &v
	}
	setF := func(p *float64, v float64) {
		if *p == 0 {
			*p = v
		}
	}
	setI := func(p *int, v int) {
		if *p == 0 {
			*p = v
		}
	}

	setF(&a.NoiseLow, 5.0)
	setF(&a.NoiseMid, 10.0)
	setF(&a.NoiseHigh, 15.0)
	setF(&a.HighHR, 140)
	setF(&a.MinInterval, 0.20)
	setF(&a.MinIntervalHighNoise, 0.25)
	setF(&a.MaxInterval, 1.5)
	setF(&a.MaxDeviation, 0.20)
	setI(&a.PeakDistance, 12)
	setI(&a.MaxPeaks, 8)
	setI(&a.HistoryCap, 15)
	setI(&a.RelockAfter, 10)

	return a
}
