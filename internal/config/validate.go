// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	if len(cfg.Monitor.Devices) == 0 {
		return errors.New("monitor: at least one device required")
	}
	if cfg.Monitor.NATS.TimeoutMs < 0 {
		return fmt.Errorf("nats: timeout_ms must be >= 0 (got %d)", cfg.Monitor.NATS.TimeoutMs)
	}

	seen := make(map[string]struct{})

	// key = endpoint | unit_id | slot
	statusOwner := make(map[string]string)

	// one client per endpoint => one protocol per endpoint
	endpointProto := make(map[string]string)

	for _, d := range cfg.Monitor.Devices {
		if d.ID == "" {
			return errors.New("device: id required")
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("device %q: duplicate id", d.ID)
		}
		seen[d.ID] = struct{}{}

		// device_name sanity (ASCII only)
		for i := 0; i < len(d.DeviceName); i++ {
			if d.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"device %q: device_name must contain ASCII characters only",
					d.ID,
				)
			}
		}

		if d.Source.NotifySubject == "" {
			return fmt.Errorf("device %q: source.notify_subject required", d.ID)
		}

		if err := validateCycle(d.ID, d.Cycle); err != nil {
			return err
		}
		if err := validateAnalysis(d.ID, d.Analysis); err != nil {
			return err
		}

		// ------------------------------------------------------------
		// HEART-RATE STATUS BLOCK (OPT-IN)
		// ------------------------------------------------------------

		if d.Status == nil {
			continue
		}
		if d.Status.Endpoint == "" {
			return fmt.Errorf("device %q: status.endpoint required", d.ID)
		}
		switch d.Status.Protocol {
		case "", StatusProtocolModbus, StatusProtocolIngest:
		default:
			return fmt.Errorf("device %q: status.protocol %q not supported", d.ID, d.Status.Protocol)
		}
		if d.Status.TimeoutMs < 0 {
			return fmt.Errorf("device %q: status.timeout_ms must be >= 0", d.ID)
		}

		proto := d.Status.Protocol
		if proto == "" {
			proto = StatusProtocolModbus
		}
		if prev, exists := endpointProto[d.Status.Endpoint]; exists && prev != proto {
			return fmt.Errorf(
				"device %q: status endpoint %s already used with protocol %q",
				d.ID, d.Status.Endpoint, prev,
			)
		}
		endpointProto[d.Status.Endpoint] = proto

		key := fmt.Sprintf("%s|%d|%d", d.Status.Endpoint, d.Status.UnitID, d.Status.Slot)
		if prev, exists := statusOwner[key]; exists {
			return fmt.Errorf(
				"status slot collision: endpoint=%s unit_id=%d slot=%d used by devices %q and %q",
				d.Status.Endpoint,
				d.Status.UnitID,
				d.Status.Slot,
				prev,
				d.ID,
			)
		}
		statusOwner[key] = d.ID
	}

	return nil
}

func validateCycle(id string, c CycleConfig) error {
	if c.IntervalMs < 0 {
		return fmt.Errorf("device %q: cycle.interval_ms must be >= 0", id)
	}
	if c.Points < 0 || c.Points == 1 {
		return fmt.Errorf("device %q: cycle.points must be 0 (default) or >= 2", id)
	}
	if c.MinSamples < 0 {
		return fmt.Errorf("device %q: cycle.min_samples must be >= 0", id)
	}
	return nil
}

func validateAnalysis(id string, a AnalysisConfig) error {
	if a.CalHRTime != nil && *a.CalHRTime < 0 {
		return fmt.Errorf("device %q: analysis.cal_hr_time must be >= 0", id)
	}

	for name, v := range map[string]float64{
		"noise_low":                 a.NoiseLow,
		"noise_mid":                 a.NoiseMid,
		"noise_high":                a.NoiseHigh,
		"high_hr":                   a.HighHR,
		"min_interval_s":            a.MinInterval,
		"min_interval_high_noise_s": a.MinIntervalHighNoise,
		"max_interval_s":            a.MaxInterval,
		"max_deviation":             a.MaxDeviation,
	} {
		if v < 0 {
			return fmt.Errorf("device %q: analysis.%s must be >= 0", id, name)
		}
	}
	if a.PeakDistance < 0 || a.MaxPeaks < 0 || a.HistoryCap < 0 {
		return fmt.Errorf("device %q: analysis peak/history settings must be >= 0", id)
	}
	if a.MaxDeviation > 1 {
		return fmt.Errorf("device %q: analysis.max_deviation must be <= 1", id)
	}

	eff := withAnalysisDefaults(a)

	if !(eff.NoiseLow <= eff.NoiseMid && eff.NoiseMid <= eff.NoiseHigh) {
		return fmt.Errorf(
			"device %q: noise thresholds must satisfy low <= mid <= high (got %v/%v/%v)",
			id, eff.NoiseLow, eff.NoiseMid, eff.NoiseHigh,
		)
	}
	if eff.MinInterval >= eff.MaxInterval || eff.MinIntervalHighNoise >= eff.MaxInterval {
		return fmt.Errorf(
			"device %q: interval bounds must satisfy min < max (got %v/%v/%v)",
			id, eff.MinInterval, eff.MinIntervalHighNoise, eff.MaxInterval,
		)
	}
	return nil
}
