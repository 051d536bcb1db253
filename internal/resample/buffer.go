// internal/resample/buffer.go
package resample

import (
	"sync"

	"github.com/tamzrod/ppg-monitor/internal/telemetry"
)

const (
	// DefaultPoints is the canonical 50 Hz window length for one second.
	DefaultPoints = 50

	// DefaultMinSamples is the minimum accumulated samples for a real resample.
	DefaultMinSamples = 10
)

// Window is one second of sensor activity at a fixed rate.
// Every channel holds exactly Points values.
type Window struct {
	PPG  []float64
	Acc  [][3]float64
	Gyro [][3]float64
	Mag  [][3]float64

	// Samples is the number of decoded samples that went into the window.
	Samples int

	// Skipped is set when too few samples accumulated and the window is zero-filled.
	Skipped bool
}

// Buffer accumulates irregular sensor samples between flushes.
// Add and Flush are serialized by one mutex so no sample straddles a flush.
type Buffer struct {
	points     int
	minSamples int

	mu   sync.Mutex
	ppg  []float64
	acc  [3][]float64
	gyro [3][]float64
	mag  [3][]float64
}

// NewBuffer creates a buffer. Zero values select the defaults.
func NewBuffer(points, minSamples int) *Buffer {
	if points <= 0 {
		points = DefaultPoints
	}
	if minSamples <= 0 {
		minSamples = DefaultMinSamples
	}
	return &Buffer{points: points, minSamples: minSamples}
}

// Add appends sensor samples. Battery readings are ignored.
// Returns the number of sensor samples appended.
func (b *Buffer) Add(samples ...telemetry.Sample) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, s := range samples {
		ss, ok := s.(telemetry.SensorSample)
		if !ok {
			continue
		}
		b.ppg = append(b.ppg, float64(ss.PPG))
		for axis := 0; axis < 3; axis++ {
			b.acc[axis] = append(b.acc[axis], float64(ss.Acc[axis]))
			b.gyro[axis] = append(b.gyro[axis], float64(ss.Gyro[axis]))
			b.mag[axis] = append(b.mag[axis], float64(ss.Mag[axis]))
		}
		n++
	}
	return n
}

// Len returns the number of samples accumulated since the last flush.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ppg)
}

// Flush resamples every channel, clears the buffer and returns the window.
func (b *Buffer) Flush() Window {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := Window{Samples: len(b.ppg)}

	if w.Samples < b.minSamples {
		w.Skipped = true
		w.PPG = make([]float64, b.points)
		w.Acc = make([][3]float64, b.points)
		w.Gyro = make([][3]float64, b.points)
		w.Mag = make([][3]float64, b.points)
	} else {
		w.PPG = Linear(b.ppg, b.points)
		w.Acc = b.vector(b.acc)
		w.Gyro = b.vector(b.gyro)
		w.Mag = b.vector(b.mag)
	}

	b.clear()
	return w
}

func (b *Buffer) vector(ch [3][]float64) [][3]float64 {
	out := make([][3]float64, b.points)
	for axis := 0; axis < 3; axis++ {
		for i, v := range Linear(ch[axis], b.points) {
			out[i][axis] = v
		}
	}
	return out
}

func (b *Buffer) clear() {
	b.ppg = b.ppg[:0]
	for axis := 0; axis < 3; axis++ {
		b.acc[axis] = b.acc[axis][:0]
		b.gyro[axis] = b.gyro[axis][:0]
		b.mag[axis] = b.mag[axis][:0]
	}
}
