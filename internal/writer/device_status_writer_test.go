// internal/writer/device_status_writer_test.go
package writer

import (
	"errors"
	"testing"

	"github.com/tamzrod/ppg-monitor/internal/analysis"
	cfg "github.com/tamzrod/ppg-monitor/internal/config"
	"github.com/tamzrod/ppg-monitor/internal/session"
	"github.com/tamzrod/ppg-monitor/internal/status"
)

// ---- fake endpoint client ----

type fakeEndpointClient struct {
	fail bool

	writes       int
	lastUnitID   uint8
	lastRegsAddr uint16
	lastRegs     []uint16
}

func (f *fakeEndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if f.fail {
		return errors.New("link down")
	}
	f.writes++
	f.lastUnitID = unitID
	f.lastRegsAddr = addr
	f.lastRegs = append([]uint16(nil), regs...)
	return nil
}

func testPlan() Plan {
	return Plan{
		DeviceID: "wrist",
		Status: &StatusPlan{
			Endpoint:   "status-endpoint",
			UnitID:     1,
			BaseSlot:   2,
			DeviceName: "BAND-01",
		},
	}
}

// ---- tests ----

func TestDeviceNameWrittenOnFullAssertOnly(t *testing.T) {
	cli := &fakeEndpointClient{}
	plan := testPlan()

	sw, enabled := NewDeviceStatusWriter(plan, map[string]endpointClient{"status-endpoint": cli})
	if !enabled {
		t.Fatalf("status writer should be enabled")
	}

	// ---- first write: FULL ASSERT ----
	first := status.Snapshot{State: status.StateStabilizing, Battery: 90}

	if err := sw.WriteStatus(first); err != nil {
		t.Fatalf("initial full assert failed: %v", err)
	}

	if len(cli.lastRegs) != status.SlotsPerDevice {
		t.Fatalf("expected full block write (%d regs), got %d", status.SlotsPerDevice, len(cli.lastRegs))
	}
	if cli.lastRegsAddr != 2*status.SlotsPerDevice {
		t.Fatalf("block addr: got=%d want=%d", cli.lastRegsAddr, 2*status.SlotsPerDevice)
	}

	// Verify device name encoding EXACTLY
	expectedNameRegs := status.EncodeDeviceName(plan.Status.DeviceName)
	for i := 0; i < status.SlotDeviceNameSlots; i++ {
		slot := status.SlotDeviceNameStart + i
		if cli.lastRegs[slot] != expectedNameRegs[i] {
			t.Fatalf("device name slot %d mismatch: got=%d want=%d", slot, cli.lastRegs[slot], expectedNameRegs[i])
		}
	}

	// ---- second write: INCREMENTAL ONLY ----
	second := first
	second.State = status.StateActive

	if err := sw.WriteStatus(second); err != nil {
		t.Fatalf("incremental write failed: %v", err)
	}
	if len(cli.lastRegs) != 1 {
		t.Fatalf("device name should not be rewritten on incremental update (wrote %d regs)", len(cli.lastRegs))
	}
	if cli.lastRegsAddr != 2*status.SlotsPerDevice+status.SlotState {
		t.Fatalf("unexpected write addr: %d", cli.lastRegsAddr)
	}
}

func TestUnchangedSnapshotWritesNothing(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, _ := NewDeviceStatusWriter(testPlan(), map[string]endpointClient{"status-endpoint": cli})

	snap := status.Snapshot{State: status.StateActive, HeartRateX10: 720}
	if err := sw.WriteStatus(snap); err != nil {
		t.Fatalf("full assert: %v", err)
	}
	before := cli.writes

	if err := sw.WriteStatus(snap); err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if cli.writes != before {
		t.Fatalf("expected no writes, got %d", cli.writes-before)
	}
}

func TestHeartRateDropToZeroOnNotWorn(t *testing.T) {
	cli := &fakeEndpointClient{}
	plan := testPlan()
	sw, _ := NewDeviceStatusWriter(plan, map[string]endpointClient{"status-endpoint": cli})

	_ = sw.WriteStatus(status.Snapshot{State: status.StateActive, HeartRateX10: 720})

	if err := sw.WriteStatus(status.Snapshot{State: status.StateNotWorn}); err != nil {
		t.Fatalf("not-worn write failed: %v", err)
	}

	expectedAddr := plan.Status.BaseSlot*status.SlotsPerDevice + status.SlotHeartRateX10
	if cli.lastRegsAddr != expectedAddr {
		t.Fatalf("unexpected write addr: got=%d want=%d", cli.lastRegsAddr, expectedAddr)
	}
	if len(cli.lastRegs) != 1 || cli.lastRegs[0] != 0 {
		t.Fatalf("heart rate not reset: %v", cli.lastRegs)
	}
}

func TestFailureForcesFullReassert(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, _ := NewDeviceStatusWriter(testPlan(), map[string]endpointClient{"status-endpoint": cli})

	_ = sw.WriteStatus(status.Snapshot{State: status.StateActive, HeartRateX10: 720})

	cli.fail = true
	if err := sw.WriteStatus(status.Snapshot{State: status.StateActive, HeartRateX10: 730}); err == nil {
		t.Fatalf("expected error while link down")
	}

	cli.fail = false
	if err := sw.WriteStatus(status.Snapshot{State: status.StateActive, HeartRateX10: 730}); err != nil {
		t.Fatalf("recovery write failed: %v", err)
	}
	if len(cli.lastRegs) != status.SlotsPerDevice {
		t.Fatalf("expected full re-assert after failure, got %d regs", len(cli.lastRegs))
	}
}

func TestMissingClient(t *testing.T) {
	sw, _ := NewDeviceStatusWriter(testPlan(), map[string]endpointClient{})
	if err := sw.WriteStatus(status.Snapshot{}); err == nil {
		t.Fatalf("expected missing client error")
	}
}

func TestWriter_CycleToStatusBlock(t *testing.T) {
	cli := &fakeEndpointClient{}
	w := New(testPlan(), map[string]endpointClient{"status-endpoint": cli})

	err := w.Write(session.Cycle{
		DeviceID:  "wrist",
		State:     analysis.StateActive,
		HeartRate: 71.96,
		Battery:   55,
		Samples:   50,
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if cli.lastUnitID != 1 {
		t.Fatalf("unit id: got=%d", cli.lastUnitID)
	}
	if got := cli.lastRegs[status.SlotHeartRateX10]; got != 720 {
		t.Fatalf("heart rate x10: got=%d want=720", got)
	}
	if got := cli.lastRegs[status.SlotBattery]; got != 55 {
		t.Fatalf("battery: got=%d want=55", got)
	}

	if err := w.Write(session.Cycle{DeviceID: "other"}); err == nil {
		t.Fatalf("expected device mismatch error")
	}
}

func TestWriter_DisabledStatusIsNoop(t *testing.T) {
	w := New(Plan{DeviceID: "wrist"}, nil)
	if err := w.Write(session.Cycle{DeviceID: "wrist"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildPlan(t *testing.T) {
	d := cfg.DeviceConfig{
		ID:         "wrist",
		DeviceName: "BAND-01",
		Status:     &cfg.StatusConfig{Endpoint: "ep", UnitID: 3, Slot: 4},
	}
	plan, err := BuildPlan(d)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Status == nil || plan.Status.BaseSlot != 4 || plan.Status.UnitID != 3 || plan.Status.DeviceName != "BAND-01" {
		t.Fatalf("unexpected plan: %+v", plan.Status)
	}

	d.Status = nil
	plan, _ = BuildPlan(d)
	if plan.Status != nil {
		t.Fatalf("status should be disabled")
	}

	if _, err := BuildPlan(cfg.DeviceConfig{}); err == nil {
		t.Fatalf("expected id error")
	}
}

func TestBuildEndpointClients_IngestNeedsNoDial(t *testing.T) {
	devices := []cfg.DeviceConfig{
		{ID: "a", Status: &cfg.StatusConfig{Protocol: cfg.StatusProtocolIngest, Endpoint: "127.0.0.1:9", Slot: 0}},
		{ID: "b", Status: &cfg.StatusConfig{Protocol: cfg.StatusProtocolIngest, Endpoint: "127.0.0.1:9", Slot: 1}},
		{ID: "c"},
	}
	clients, closeAll, err := BuildEndpointClients(devices)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer closeAll()

	if len(clients) != 1 {
		t.Fatalf("expected 1 unique client, got %d", len(clients))
	}
}
