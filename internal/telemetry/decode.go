// internal/telemetry/decode.go
package telemetry

import "encoding/binary"

// Decode turns one raw notification into samples.
// It never fails: malformed or short payloads yield an empty slice.
//
// Layout (battery frame, 10 bytes):
//
//	0-3  "BATT"
//	4-5  reserved (raw battery word, unused)
//	6    level percent (clamped to 0..100)
//	7    reserved
//	8-9  sample count (LE)
//
// Layout (telemetry frame, N × 20 bytes):
//
//	0-1   PPG intensity (LE uint16)
//	2-7   acc x/y/z   (LE half)
//	8-13  gyro x/y/z  (LE half)
//	14-19 mag x/y/z   (LE half)
func Decode(payload []byte) []Sample {
	if isBatteryFrame(payload) {
		return []Sample{decodeBattery(payload)}
	}

	n := len(payload) / ChunkSize
	if n == 0 {
		return nil
	}

	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, decodeChunk(payload[i*ChunkSize:(i+1)*ChunkSize]))
	}
	return out
}

// DecodeSensors is Decode filtered to sensor samples.
func DecodeSensors(payload []byte) []SensorSample {
	var out []SensorSample
	for _, s := range Decode(payload) {
		if ss, ok := s.(SensorSample); ok {
			out = append(out, ss)
		}
	}
	return out
}

func isBatteryFrame(p []byte) bool {
	if len(p) < BatteryFrameSize {
		return false
	}
	return p[0] == batteryMarker[0] &&
		p[1] == batteryMarker[1] &&
		p[2] == batteryMarker[2] &&
		p[3] == batteryMarker[3]
}

func decodeBattery(p []byte) BatteryReading {
	level := p[6]
	if level > 100 {
		level = 100
	}
	return BatteryReading{
		Level: level,
		Count: binary.LittleEndian.Uint16(p[8:10]),
	}
}

func decodeChunk(c []byte) SensorSample {
	var s SensorSample
	s.PPG = binary.LittleEndian.Uint16(c[0:2])
	for axis := 0; axis < 3; axis++ {
		s.Acc[axis] = halfAt(c, 2+2*axis)
		s.Gyro[axis] = halfAt(c, 8+2*axis)
		s.Mag[axis] = halfAt(c, 14+2*axis)
	}
	return s
}

func halfAt(c []byte, off int) float32 {
	return HalfToFloat32(binary.LittleEndian.Uint16(c[off : off+2]))
}
