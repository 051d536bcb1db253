// internal/writer/writer.go
package writer

import (
	"fmt"

	"github.com/tamzrod/ppg-monitor/internal/session"
	"github.com/tamzrod/ppg-monitor/internal/status"
)

type writerImpl struct {
	plan   Plan
	status StatusWriter // nil when disabled
}

// New builds the writer for one device plan.
// A plan without a status block yields a writer that accepts and drops cycles.
func New(plan Plan, clients map[string]endpointClient) Writer {
	w := &writerImpl{plan: plan}
	if sw, enabled := NewDeviceStatusWriter(plan, clients); enabled {
		w.status = sw
	}
	return w
}

func (w *writerImpl) Write(c session.Cycle) error {
	if w.status == nil {
		return nil
	}
	if c.DeviceID != "" && c.DeviceID != w.plan.DeviceID {
		return fmt.Errorf("writer: cycle for device %s delivered to writer of %s", c.DeviceID, w.plan.DeviceID)
	}
	return w.status.WriteStatus(status.FromCycle(c))
}
