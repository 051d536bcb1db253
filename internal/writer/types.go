// internal/writer/types.go
package writer

import "github.com/tamzrod/ppg-monitor/internal/session"

// StatusPlan locates one device's heart-rate status block.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16 // block index; register address = BaseSlot * SlotsPerDevice
	DeviceName string
}

// Plan is the fully-built write plan for one device.
type Plan struct {
	DeviceID string
	Status   *StatusPlan // nil => status delivery disabled
}

// Writer delivers cycle results to their targets.
type Writer interface {
	Write(c session.Cycle) error
}

// endpointClient is the exact contract the writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
