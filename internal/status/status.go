// Package status provides a thread-safe view of the daemon state, written by
// the polling loop and read by the HTTP handlers and MQTT heartbeats.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/pippo/internal/logic"
	"github.com/sweeney/pippo/internal/weather"
)

// NetworkInfo is the network state reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Online reports whether the interface is up with an address.
func (n *NetworkInfo) Online() bool {
	return n != nil && n.IP != "" && n.Status == "connected"
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	LongPressMs int64
	HeartbeatMs int64
	Broker      string
	HTTPPort    string
	Buzzer      bool
	Weather     bool
	Idle        bool
}

// Loop is the part of the snapshot the polling loop refreshes every tick.
type Loop struct {
	UI      logic.UI
	Pressed bool
	Face    logic.FaceState
	Counts  logic.EventCounts
	Redraws int
}

// Snapshot is a point-in-time copy of daemon state.
type Snapshot struct {
	Loop

	StartTime     time.Time
	Now           time.Time
	ClockSynced   bool
	MQTTConnected bool
	Buzzes        int
	Network       *NetworkInfo
	Weather       *weather.Report
	WeatherAt     time.Time
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Screen returns the current screen, HOME before the first update.
func (s Snapshot) Screen() logic.ScreenKind {
	if s.UI == nil {
		return logic.ScreenHome
	}
	return s.UI.Kind()
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
			Loop:      Loop{UI: logic.Home{}, Face: logic.FaceState{EyesOpen: true}},
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update stores the loop state. Called from runLoop on every tick.
func (t *Tracker) Update(l Loop) {
	t.mu.Lock()
	t.snap.Loop = l
	t.mu.Unlock()
}

func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

func (t *Tracker) SetClockSynced(synced bool) {
	t.mu.Lock()
	t.snap.ClockSynced = synced
	t.mu.Unlock()
}

// SetWeather records the latest report and when it was fetched.
func (t *Tracker) SetWeather(r weather.Report, at time.Time) {
	t.mu.Lock()
	t.snap.Weather = &r
	t.snap.WeatherAt = at
	t.mu.Unlock()
}

// RecordBuzz counts one buzzer pulse.
func (t *Tracker) RecordBuzz() {
	t.mu.Lock()
	t.snap.Buzzes++
	t.mu.Unlock()
}

// Snapshot returns a copy of the state with Now set to the current time.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
