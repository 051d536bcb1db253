// internal/status/snapshot.go
package status

import (
	"errors"
	"math"

	"github.com/tamzrod/ppg-monitor/internal/analysis"
	"github.com/tamzrod/ppg-monitor/internal/session"
)

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	State        uint16
	HeartRateX10 uint16
	Battery      uint16
	SampleCount  uint16
	StableCycles uint16
	NoiseX100    uint16
	Order        uint16
	CycleCounter uint16
	ErrorCode    uint16
}

// FromCycle scales one session cycle into register values.
// Out-of-range values saturate; they never wrap.
func FromCycle(c session.Cycle) Snapshot {
	s := Snapshot{
		State:        stateCode(c.State),
		HeartRateX10: scale(c.HeartRate, 10),
		Battery:      BatteryUnknown,
		SampleCount:  clampInt(c.Samples),
		StableCycles: clampInt(c.StableCycles),
		NoiseX100:    scale(c.Noise, 100),
		Order:        clampInt(c.Order),
		CycleCounter: uint16(c.Seq), // wraps
		ErrorCode:    errorCode(c.Err),
	}
	if c.Battery >= 0 {
		s.Battery = clampInt(c.Battery)
	}
	return s
}

func stateCode(st analysis.State) uint16 {
	switch st {
	case analysis.StateNotWorn:
		return StateNotWorn
	case analysis.StateStabilizing:
		return StateStabilizing
	case analysis.StateActive:
		return StateActive
	default:
		return StateUnknown
	}
}

func errorCode(err error) uint16 {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, analysis.ErrSingularFit):
		return ErrorSingularFit
	default:
		return ErrorOther
	}
}

func scale(v, factor float64) uint16 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	x := math.Round(v * factor)
	if x > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(x)
}

func clampInt(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
