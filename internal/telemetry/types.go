// internal/telemetry/types.go
package telemetry

// Frame geometry. These values define the device protocol and MUST NOT be configurable.
const (
	// ChunkSize is the size of one PPG+IMU record inside a notification.
	ChunkSize = 20

	// BatteryFrameSize is the fixed size of a battery/count frame.
	BatteryFrameSize = 10
)

// batteryMarker prefixes battery/count frames.
var batteryMarker = [4]byte{'B', 'A', 'T', 'T'}

// Sample is one decoded record.
// Exactly one of BatteryReading or SensorSample.
type Sample interface {
	isSample()
}

// BatteryReading is the battery/count frame.
type BatteryReading struct {
	Level uint8  // percent, 0..100
	Count uint16 // running sample count reported by the device
}

// SensorSample is one PPG intensity plus 3-axis IMU readings.
type SensorSample struct {
	PPG  uint16
	Acc  [3]float32
	Gyro [3]float32
	Mag  [3]float32
}

func (BatteryReading) isSample() {}
func (SensorSample) isSample()   {}
