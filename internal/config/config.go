// internal/config/config.go
package config

type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
}

type MonitorConfig struct {
	NATS    NATSConfig     `yaml:"nats"`
	Display DisplayConfig  `yaml:"display"`
	Devices []DeviceConfig `yaml:"devices"`
}

// ---- TRANSPORT ----

type NATSConfig struct {
	URL       string `yaml:"url"`
	Name      string `yaml:"name"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- DISPLAY (optional) ----

type DisplayConfig struct {
	Addr string `yaml:"addr"` // empty => websocket display disabled
}

// ---- DEVICE ----

type DeviceConfig struct {
	ID         string `yaml:"id"`
	DeviceName string `yaml:"device_name"`

	Source   SourceConfig   `yaml:"source"`
	Cycle    CycleConfig    `yaml:"cycle"`
	Analysis AnalysisConfig `yaml:"analysis"`

	// Heart-rate status block (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- SOURCE ----

// SourceConfig names the transport identifiers for one device.
// Immutable after Normalize.
type SourceConfig struct {
	NotifySubject  string `yaml:"notify_subject"`
	CommandSubject string `yaml:"command_subject"`
	ResultSubject  string `yaml:"result_subject"`

	// Device-control strings, forwarded verbatim.
	StartCommands []string `yaml:"start_commands"`
	StopCommands  []string `yaml:"stop_commands"`
}

// ---- CYCLE ----

type CycleConfig struct {
	IntervalMs int `yaml:"interval_ms"`
	Points     int `yaml:"points"`
	MinSamples int `yaml:"min_samples"`
}

// ---- ANALYSIS ----

// AnalysisConfig mirrors analysis.Config. Zero values select the defaults.
type AnalysisConfig struct {
	CalHRTime *int `yaml:"cal_hr_time"`

	NoiseLow  float64 `yaml:"noise_low"`
	NoiseMid  float64 `yaml:"noise_mid"`
	NoiseHigh float64 `yaml:"noise_high"`
	HighHR    float64 `yaml:"high_hr"`

	MinInterval          float64 `yaml:"min_interval_s"`
	MinIntervalHighNoise float64 `yaml:"min_interval_high_noise_s"`
	MaxInterval          float64 `yaml:"max_interval_s"`

	PeakDistance int     `yaml:"peak_distance"`
	MaxPeaks     int     `yaml:"max_peaks"`
	HistoryCap   int     `yaml:"history_cap"`
	MaxDeviation float64 `yaml:"max_deviation"`
	RelockAfter  int     `yaml:"relock_after"` // < 0 disables
}

// ---- STATUS ----

// Protocol selects the delivery client: "modbus" (default) or "ingest".
type StatusConfig struct {
	Protocol  string `yaml:"protocol"`
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Slot      uint16 `yaml:"slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}
