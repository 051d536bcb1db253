// internal/session/types.go
package session

import (
	"time"

	"github.com/tamzrod/ppg-monitor/internal/analysis"
	"github.com/tamzrod/ppg-monitor/internal/resample"
)

// BatteryUnknown is reported until the first battery frame arrives.
const BatteryUnknown = -1

// Cycle is the result produced by one tick.
type Cycle struct {
	DeviceID  string    `json:"device_id"`
	SessionID string    `json:"session_id"`
	Seq       uint64    `json:"seq"`
	At        time.Time `json:"at"`

	HeartRate    float64        `json:"heart_rate"`
	State        analysis.State `json:"state"`
	StableCycles int            `json:"stable_cycles"`

	// Window geometry
	Samples int  `json:"samples"`
	Skipped bool `json:"skipped"`

	Order     int       `json:"order"`
	Noise     float64   `json:"noise"`
	HighNoise bool      `json:"high_noise"`
	Detrended []float64 `json:"detrended,omitempty"`
	Peaks     []int     `json:"peaks,omitempty"`
	Filtered  []float64 `json:"filtered,omitempty"`

	// Battery is the last reported level in percent, or BatteryUnknown.
	Battery     int    `json:"battery"`
	DeviceCount uint16 `json:"device_count"`

	// Window is the raw resampled input (not published).
	Window resample.Window `json:"-"`

	Err   error  `json:"-"`
	Error string `json:"error,omitempty"` // Err rendered for consumers
}
