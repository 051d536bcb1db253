// internal/sim/ppg.go
package sim

import (
	"math"

	"github.com/tamzrod/ppg-monitor/internal/telemetry"
)

// Waveform shape. Values are in raw sensor counts.
const (
	baselineCounts = 30000
	pulseCounts    = 900
	driftCounts    = 150
	driftHz        = 0.1
)

// PPGSim generates a wrist PPG waveform plus IMU readings at fs Hz.
// Not physiological: slow baseline drift + a single-maximum pulse per beat.
type PPGSim struct {
	fs     float64
	hrBPM  float64
	motion float64

	phase float64
	n     int
}

// NewPPGSim fs=50 matches the canonical window rate.
func NewPPGSim(fs, hrBPM float64) *PPGSim {
	return &PPGSim{fs: fs, hrBPM: hrBPM}
}

// SetHeartRate changes the pulse rate from the next sample on.
func (s *PPGSim) SetHeartRate(bpm float64) { s.hrBPM = bpm }

// SetMotion sets the accelerometer shake amplitude (g). 0 = still.
func (s *PPGSim) SetMotion(amp float64) { s.motion = amp }

// Next returns the next sample and advances time.
func (s *PPGSim) Next() telemetry.SensorSample {
	t := float64(s.n) / s.fs
	x := 2 * math.Pi * s.phase

	// cos x + 0.25·cos 2x has one maximum per period (x=0)
	pulse := (math.Cos(x) + 0.25*math.Cos(2*x)) / 1.25
	drift := driftCounts * math.Sin(2*math.Pi*driftHz*t)
	ppg := baselineCounts + drift + pulseCounts*pulse

	out := telemetry.SensorSample{
		PPG:  uint16(math.Round(ppg)),
		Acc:  [3]float32{0, 0, 1},
		Gyro: [3]float32{0, 0, 0},
		Mag:  [3]float32{0.25, -0.125, 0.5},
	}

	if s.motion > 0 {
		// alternating shake, deterministic
		sign := float32(1)
		if s.n%2 == 1 {
			sign = -1
		}
		m := sign * float32(s.motion)
		out.Acc[0] += m
		out.Acc[1] -= m
		out.Acc[2] += m / 2
		out.Gyro = [3]float32{m * 8, m * 8, -m * 8}
	}

	s.n++
	s.phase += s.hrBPM / 60 / s.fs
	if s.phase >= 1 {
		s.phase -= 1
	}
	return out
}

// Batch returns the next n samples.
func (s *PPGSim) Batch(n int) []telemetry.SensorSample {
	out := make([]telemetry.SensorSample, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// Notification returns the next n samples encoded as one device notification.
func (s *PPGSim) Notification(n int) []byte {
	return telemetry.EncodeSensor(s.Batch(n))
}

// Off returns an n-sample notification from a device that is not worn.
func Off(n int) []byte {
	return telemetry.EncodeSensor(make([]telemetry.SensorSample, n))
}

// BatteryFrame returns an encoded battery/count frame.
func BatteryFrame(level uint8, count uint16) []byte {
	return telemetry.EncodeBattery(telemetry.BatteryReading{Level: level, Count: count})
}
