// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/ppg-monitor/internal/config"
	"github.com/tamzrod/ppg-monitor/internal/writer/ingest"
	wmodbus "github.com/tamzrod/ppg-monitor/internal/writer/modbus"
)

// BuildPlan converts one device config into a writer Plan.
// Assumes config has already passed collision validation.
func BuildPlan(d cfg.DeviceConfig) (Plan, error) {
	if d.ID == "" {
		return Plan{}, errors.New("writer: device.id required")
	}

	plan := Plan{DeviceID: d.ID}

	if d.Status != nil {
		plan.Status = &StatusPlan{
			Endpoint:   d.Status.Endpoint,
			UnitID:     d.Status.UnitID,
			BaseSlot:   d.Status.Slot,
			DeviceName: d.DeviceName,
		}
	}

	return plan, nil
}

// BuildEndpointClients creates one client per unique status endpoint.
func BuildEndpointClients(devices []cfg.DeviceConfig) (map[string]endpointClient, func() error, error) {
	unique := map[string]*cfg.StatusConfig{}
	for _, d := range devices {
		if d.Status == nil {
			continue
		}
		if _, seen := unique[d.Status.Endpoint]; !seen {
			unique[d.Status.Endpoint] = d.Status
		}
	}

	clients := make(map[string]endpointClient)
	var closers []func() error

	for endpoint, sc := range unique {
		timeout := time.Duration(sc.TimeoutMs) * time.Millisecond

		var (
			c       endpointClient
			closeFn func() error
			err     error
		)
		switch sc.Protocol {
		case cfg.StatusProtocolIngest:
			var ic *ingest.EndpointClient
			ic, err = ingest.NewEndpointClient(ingest.Config{Endpoint: endpoint, Timeout: timeout})
			if err == nil {
				c, closeFn = ic, ic.Close
			}
		default:
			var mc *wmodbus.EndpointClient
			mc, err = wmodbus.NewEndpointClient(wmodbus.Config{Endpoint: endpoint, Timeout: timeout})
			if err == nil {
				c, closeFn = mc, mc.Close
			}
		}
		if err != nil {
			for _, fn := range closers {
				_ = fn()
			}
			return nil, nil, err
		}
		clients[endpoint] = c
		closers = append(closers, closeFn)
	}

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	return clients, closeAll, nil
}
