// Package mqtt publishes navigation and lifecycle events to a broker.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/pippo/internal/logic"
)

// Topic carries one message per applied button gesture.
const Topic = "pippo/ui/events"

// TopicSystem carries lifecycle messages (STARTUP, SHUTDOWN, HEARTBEAT).
const TopicSystem = "pippo/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a navigation event. Failures are reported, never fatal.
	Publish(event logic.Event) error

	// PublishSystem sends a lifecycle event.
	PublishSystem(event SystemEvent) error

	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent is a lifecycle event.
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // "STARTUP", "SHUTDOWN", "HEARTBEAT", "OFFLINE"
	Reason     string // signal name, shutdown only
	RawPayload []byte // if set, sent as-is (status snapshots)
	Retained   bool
}

// Payload is the message body on Topic.
type Payload struct {
	UI UIPayload `json:"ui"`
}

type UIPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	From      string `json:"from"`
	To        string `json:"to"`
	// Selection is only present when the gesture landed in the menu.
	Selection *int `json:"selection,omitempty"`
}

// FormatPayload creates the JSON body for a navigation event.
func FormatPayload(event logic.Event) ([]byte, error) {
	p := UIPayload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     string(event.Type),
		From:      string(event.From),
		To:        string(event.To),
	}
	if event.Selection >= 0 {
		sel := event.Selection
		p.Selection = &sel
	}
	return json.Marshal(Payload{UI: p})
}

// SystemPayload is the body for lifecycle events that carry no snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload returns event.RawPayload when set, otherwise a minimal body.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}
	return json.Marshal(SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	})
}
