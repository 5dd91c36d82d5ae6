// Package logic contains the pure device logic: button debouncing, screen
// navigation and face animation timing.
// This package has NO external dependencies (no GPIO, display, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Edge is a debounced button transition.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgePressed
	EdgeReleased
	EdgeLongPress
)

func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgePressed:
		return "pressed"
	case EdgeReleased:
		return "released"
	case EdgeLongPress:
		return "long-press"
	default:
		return "INVALID"
	}
}

// EventType represents an applied navigation gesture.
type EventType string

const (
	EventShortPress EventType = "SHORT_PRESS"
	EventLongPress  EventType = "LONG_PRESS"
)

// Event represents a navigation step to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	From      ScreenKind
	To        ScreenKind
	// Selection is the menu selection after the step, or -1 outside the menu.
	Selection int
}

// Input represents a single sample of the button line.
type Input struct {
	Pressed bool // true = pressed (already inverted from the active-low line)
	Time    time.Time
}

// EventCounts tracks the number of each gesture since startup.
type EventCounts struct {
	Presses      int
	ShortPresses int
	LongPresses  int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
