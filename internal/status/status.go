// Package status provides a thread-safe status tracker for the segclock
// daemon. It is read by the HTTP handlers and serialized into MQTT
// system events.
package status

import (
	"sync"
	"time"
)

// Mode identifies what the display is currently rendering.
type Mode string

const (
	ModeClock Mode = "CLOCK"
	ModeVolts Mode = "VOLTS"
)

// Counts tracks event totals since startup.
type Counts struct {
	Resets       int
	ModeSwitches int
	Minutes      int // minute rollovers observed
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	DebounceMs int64
	SettleMs   int64
	TickMs     int64
	Broker     string
	HTTPAddr   string
	Sim        bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Mode          Mode
	Value         int // last 4-digit value rendered
	Seconds       int
	Minutes       int
	Volts         float64 // last potentiometer reading
	Counts        Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Mode:      ModeClock,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the rendered value and time state.
// Called from the render loop on every frame.
func (t *Tracker) Update(mode Mode, value, seconds, minutes int, volts float64, counts Counts) {
	t.mu.Lock()
	t.snap.Mode = mode
	t.snap.Value = value
	t.snap.Seconds = seconds
	t.snap.Minutes = minutes
	t.snap.Volts = volts
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
