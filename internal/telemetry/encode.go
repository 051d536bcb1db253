// internal/telemetry/encode.go
package telemetry

import "encoding/binary"

// EncodeSensor packs samples into one telemetry notification (20 bytes per sample).
// Inverse of Decode except for half-precision rounding.
func EncodeSensor(samples []SensorSample) []byte {
	out := make([]byte, len(samples)*ChunkSize)
	for i, s := range samples {
		c := out[i*ChunkSize : (i+1)*ChunkSize]
		binary.LittleEndian.PutUint16(c[0:2], s.PPG)
		for axis := 0; axis < 3; axis++ {
			binary.LittleEndian.PutUint16(c[2+2*axis:], Float32ToHalf(s.Acc[axis]))
			binary.LittleEndian.PutUint16(c[8+2*axis:], Float32ToHalf(s.Gyro[axis]))
			binary.LittleEndian.PutUint16(c[14+2*axis:], Float32ToHalf(s.Mag[axis]))
		}
	}
	return out
}

// EncodeBattery builds a 10-byte battery/count frame.
func EncodeBattery(b BatteryReading) []byte {
	out := make([]byte, BatteryFrameSize)
	copy(out[0:4], batteryMarker[:])
	out[6] = b.Level
	binary.LittleEndian.PutUint16(out[8:10], b.Count)
	return out
}
