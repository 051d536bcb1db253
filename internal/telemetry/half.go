// internal/telemetry/half.go
package telemetry

import "math"

// HalfToFloat32 widens a half-precision word the way the device firmware expects.
//
// Exponent zero is NOT treated as an IEEE-754 subnormal: the single-precision
// exponent field is set to 0x1F and the mantissa is shifted as usual. Keep this
// bit-for-bit until the firmware encoding is confirmed.
func HalfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF

	if exp == 0 {
		exp = 0x1F
	} else {
		exp = exp - 15 + 127
	}

	// mant * 8192 == mant << 13
	bits := sign<<31 | exp<<23 | mant*8192
	return math.Float32frombits(bits)
}

// Float32ToHalf narrows a float32 to a half-precision word, rounding to nearest
// with ties away from zero (bit 12 set rounds up; not ties-to-even).
// Values below the smallest normal half flush to signed zero; values above the
// largest finite half saturate to the infinity pattern.
func Float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)

	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	switch {
	case exp >= 0x1F:
		return sign | 0x7C00
	case exp <= 0:
		return sign
	}

	h := uint16(exp)<<10 | uint16(mant>>13)
	if mant&0x1000 != 0 {
		// carry may roll into the exponent, which is the correct rounding
		h++
	}
	return sign | h
}
