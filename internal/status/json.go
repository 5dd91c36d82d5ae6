package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/pippo/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Screen        string       `json:"screen"`
	Selection     *int         `json:"selection,omitempty"`
	Pressed       bool         `json:"pressed"`
	Face          FaceJSON     `json:"face"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	ClockSynced   bool         `json:"clock_synced"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Buzzes        int          `json:"buzzes"`
	Redraws       int          `json:"redraws"`
	Weather       *WeatherJSON `json:"weather,omitempty"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

type FaceJSON struct {
	EyesOpen   bool `json:"eyes_open"`
	Expression bool `json:"expression"`
}

type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

type CountsJSON struct {
	Presses      int `json:"presses"`
	ShortPresses int `json:"short_presses"`
	LongPresses  int `json:"long_presses"`
}

type WeatherJSON struct {
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
	Humidity  int     `json:"humidity"`
	FetchedAt string  `json:"fetched_at"`
}

type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	LongPressMs int64  `json:"long_press_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
	Buzzer      bool   `json:"buzzer"`
	Weather     bool   `json:"weather"`
	Idle        bool   `json:"idle"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Screen:        string(snap.Screen()),
		Pressed:       snap.Pressed,
		Face:          FaceJSON{EyesOpen: snap.Face.EyesOpen, Expression: snap.Face.Expression},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		ClockSynced:   snap.ClockSynced,
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Presses:      snap.Counts.Presses,
			ShortPresses: snap.Counts.ShortPresses,
			LongPresses:  snap.Counts.LongPresses,
		},
		Buzzes:  snap.Buzzes,
		Redraws: snap.Redraws,
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			LongPressMs: snap.Config.LongPressMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPPort:    snap.Config.HTTPPort,
			Buzzer:      snap.Config.Buzzer,
			Weather:     snap.Config.Weather,
			Idle:        snap.Config.Idle,
		},
	}
	if snap.UI != nil {
		if sel := logic.Selection(snap.UI); sel >= 0 {
			inner.Selection = &sel
		}
	}
	if snap.Weather != nil {
		inner.Weather = &WeatherJSON{
			TempC:     snap.Weather.TempC,
			Condition: snap.Weather.Condition,
			Humidity:  snap.Weather.Humidity,
			FetchedAt: snap.WeatherAt.UTC().Format(time.RFC3339),
		}
	}
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the indented status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
