// internal/status/encode.go
package status

// Encode converts a Snapshot into the live slots of a device status block
// (LiveSlots registers, slot 0 first).
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, LiveSlots)

	regs[SlotState] = s.State
	regs[SlotHeartRateX10] = s.HeartRateX10
	regs[SlotBattery] = s.Battery
	regs[SlotSampleCount] = s.SampleCount
	regs[SlotStableCycles] = s.StableCycles
	regs[SlotNoiseX100] = s.NoiseX100
	regs[SlotOrder] = s.Order
	regs[SlotCycleCounter] = s.CycleCounter
	regs[SlotErrorCode] = s.ErrorCode

	return regs
}

// SlotName is used in write diagnostics.
func SlotName(slot int) string {
	switch slot {
	case SlotState:
		return "state"
	case SlotHeartRateX10:
		return "heart_rate_x10"
	case SlotBattery:
		return "battery"
	case SlotSampleCount:
		return "sample_count"
	case SlotStableCycles:
		return "stable_cycles"
	case SlotNoiseX100:
		return "noise_x100"
	case SlotOrder:
		return "order"
	case SlotCycleCounter:
		return "cycle_counter"
	case SlotErrorCode:
		return "error_code"
	default:
		return "reserved"
	}
}

// EncodeDeviceName packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func EncodeDeviceName(name string) []uint16 {
	out := make([]uint16, SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
