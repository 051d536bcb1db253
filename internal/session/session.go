// internal/session/session.go
package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/ppg-monitor/internal/analysis"
	"github.com/tamzrod/ppg-monitor/internal/resample"
	"github.com/tamzrod/ppg-monitor/internal/telemetry"
)

// Config is the minimal runtime config a session needs.
type Config struct {
	DeviceID   string
	Interval   time.Duration
	Points     int
	MinSamples int
	Analysis   analysis.Config
}

// Session is one measurement session for one device.
//
// Ingest may be called from any goroutine (transport callbacks).
// Ticks are serialized: at most one cycle is in flight.
type Session struct {
	cfg Config
	id  string

	buf *resample.Buffer

	// cycle guards the analyzer; held for the duration of one tick.
	cycle    sync.Mutex
	analyzer *analysis.Analyzer
	seq      uint64

	batMu   sync.Mutex
	battery telemetry.BatteryReading
	hasBat  bool
}

// New creates a session with immutable config.
func New(cfg Config) (*Session, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("session: device id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("session: interval must be > 0")
	}
	if cfg.Analysis.SampleInterval <= 0 {
		return nil, errors.New("session: analysis sample interval must be > 0")
	}
	return &Session{
		cfg:      cfg,
		id:       uuid.NewString(),
		buf:      resample.NewBuffer(cfg.Points, cfg.MinSamples),
		analyzer: analysis.NewAnalyzer(cfg.Analysis),
	}, nil
}

// ID returns the measurement session id.
func (s *Session) ID() string { return s.id }

// DeviceID returns the configured device id.
func (s *Session) DeviceID() string { return s.cfg.DeviceID }

// Ingest decodes one device notification and buffers its sensor samples.
// Battery frames update the last known level and device counter.
// Returns the number of sensor samples buffered.
func (s *Session) Ingest(payload []byte) int {
	samples := telemetry.Decode(payload)
	if len(samples) == 0 {
		return 0
	}

	for _, smp := range samples {
		if b, ok := smp.(telemetry.BatteryReading); ok {
			s.batMu.Lock()
			s.battery = b
			s.hasBat = true
			s.batMu.Unlock()
		}
	}
	return s.buf.Add(samples...)
}

// Tick performs exactly one cycle: flush, resample, analyze.
// If a previous cycle is still running the tick is dropped (ok=false).
func (s *Session) Tick(at time.Time) (Cycle, bool) {
	if !s.cycle.TryLock() {
		log.Printf("session: cycle still running, tick dropped (device=%s)", s.cfg.DeviceID)
		return Cycle{}, false
	}
	defer s.cycle.Unlock()

	w := s.buf.Flush()
	res := s.analyzer.Update(w.PPG, w.Acc)

	if res.Err != nil && errors.Is(res.Err, analysis.ErrSingularFit) {
		log.Printf("session: analysis skipped, estimate retained (device=%s): %v", s.cfg.DeviceID, res.Err)
	}

	s.seq++
	c := Cycle{
		DeviceID:     s.cfg.DeviceID,
		SessionID:    s.id,
		Seq:          s.seq,
		At:           at,
		HeartRate:    res.HeartRate,
		State:        res.State,
		StableCycles: res.StableCycles,
		Samples:      w.Samples,
		Skipped:      w.Skipped,
		Order:        res.Order,
		Noise:        res.Noise,
		HighNoise:    res.HighNoise,
		Detrended:    res.Detrended,
		Peaks:        res.Peaks,
		Filtered:     res.Filtered,
		Window:       w,
		Err:          res.Err,
	}
	if res.Err != nil {
		c.Error = res.Err.Error()
	}
	c.Battery, c.DeviceCount = s.lastBattery()

	return c, true
}

// Stop ends the measurement: waits for an in-flight cycle, then destroys
// analyzer state and discards buffered samples.
func (s *Session) Stop() {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	s.buf.Flush()
	s.analyzer.Reset()
	s.seq = 0

	s.batMu.Lock()
	s.hasBat = false
	s.battery = telemetry.BatteryReading{}
	s.batMu.Unlock()
}

func (s *Session) lastBattery() (int, uint16) {
	s.batMu.Lock()
	defer s.batMu.Unlock()
	if !s.hasBat {
		return BatteryUnknown, 0
	}
	return int(s.battery.Level), s.battery.Count
}
