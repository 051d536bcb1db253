// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/ppg-monitor/internal/status"
)

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter is the concrete implementation used by the monitor.
type deviceStatusWriter struct {
	plan *StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16 // live slots as last delivered
	nameRegs []uint16
}

// NewDeviceStatusWriter builds a status writer if status is enabled for the device.
// If plan.Status is nil, status is disabled.
func NewDeviceStatusWriter(plan Plan, clients map[string]endpointClient) (*deviceStatusWriter, bool) {
	if plan.Status == nil {
		return nil, false
	}

	sp := plan.Status
	cli := clients[sp.Endpoint]

	return &deviceStatusWriter{
		plan:     sp,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Encode(status.Snapshot{State: status.StateUnknown}),
		nameRegs: status.EncodeDeviceName(sp.DeviceName),
	}, true
}

// WriteStatus delivers a heart-rate snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	live := status.Encode(s)
	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := sw.fullBlockRegs(live)

		if err := sw.cli.WriteRegisters(unitID, baseAddr, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		copy(sw.last, live)
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: changed live slots only
	// ------------------------------------------------------------
	var errs []string

	for slot, v := range live {
		if sw.last[slot] == v {
			continue
		}
		if err := sw.cli.WriteRegisters(unitID, baseAddr+uint16(slot), []uint16{v}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", slot, status.SlotName(slot), err))
			continue
		}
		sw.last[slot] = v
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *deviceStatusWriter) fullBlockRegs(live []uint16) []uint16 {
	regs := make([]uint16, status.SlotsPerDevice)

	// Slots 0..LiveSlots-1: live status
	copy(regs, live)

	// Reserved slots are left as zero

	// Device name always lives at the end of the block
	for i := 0; i < status.SlotDeviceNameSlots; i++ {
		dst := status.SlotDeviceNameStart + i
		if dst < len(regs) && i < len(sw.nameRegs) {
			regs[dst] = sw.nameRegs[i]
		}
	}

	return regs
}
