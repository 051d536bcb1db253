// internal/sim/ppg_test.go
package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/ppg-monitor/internal/telemetry"
)

func TestPPGSim_NotificationDecodes(t *testing.T) {
	s := NewPPGSim(50, 72)
	payload := s.Notification(6)
	require.Len(t, payload, 6*telemetry.ChunkSize)

	got := telemetry.DecodeSensors(payload)
	require.Len(t, got, 6)
	for _, smp := range got {
		assert.InDelta(t, 30000, float64(smp.PPG), 1200)
		assert.Equal(t, float32(1), smp.Acc[2])
	}
}

func TestPPGSim_OnePeakPerBeat(t *testing.T) {
	s := NewPPGSim(50, 60) // one beat per 50 samples
	batch := s.Batch(200)

	var maxima []int
	for i := 1; i < len(batch)-1; i++ {
		if batch[i].PPG > batch[i-1].PPG && batch[i].PPG > batch[i+1].PPG {
			maxima = append(maxima, i)
		}
	}
	require.Len(t, maxima, 3)
	for i := 1; i < len(maxima); i++ {
		assert.InDelta(t, 50, maxima[i]-maxima[i-1], 1)
	}
}

func TestPPGSim_Motion(t *testing.T) {
	s := NewPPGSim(50, 72)
	s.SetMotion(2)
	a, b := s.Next(), s.Next()
	assert.Equal(t, float32(2), a.Acc[0])
	assert.Equal(t, float32(-2), b.Acc[0])
}

func TestOff_IsAllZeroPPG(t *testing.T) {
	for _, smp := range telemetry.DecodeSensors(Off(4)) {
		assert.Zero(t, smp.PPG)
	}
}

func TestBatteryFrame(t *testing.T) {
	got := telemetry.Decode(BatteryFrame(87, 1234))
	require.Len(t, got, 1)
	assert.Equal(t, telemetry.BatteryReading{Level: 87, Count: 1234}, got[0])
}
