package logic

import "time"

// Controller applies debounced button gestures to the navigation state.
type Controller struct {
	button        *Debouncer
	ui            UI
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewController creates a controller on the face screen.
// The startTime is used for calculating uptime in heartbeat events.
func NewController(debounceDuration, longPressDuration time.Duration, startTime time.Time) *Controller {
	return &Controller{
		button:        NewDebouncer(debounceDuration, longPressDuration),
		ui:            Home{},
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes a new button sample and returns the navigation event that was
// applied, if any. A long press is applied the moment it fires; a release only
// counts as a short press when no long press fired during that hold.
func (c *Controller) Process(input Input) *Event {
	edge := c.button.Sample(input.Pressed, input.Time)

	var eventType EventType
	next := c.ui
	switch edge {
	case EdgePressed:
		c.eventCounts.Presses++
		return nil
	case EdgeLongPress:
		eventType = EventLongPress
		next = OnLongPress(c.ui)
		c.eventCounts.LongPresses++
	case EdgeReleased:
		if c.button.LongFired() {
			return nil
		}
		eventType = EventShortPress
		next = OnShortPress(c.ui)
		c.eventCounts.ShortPresses++
	default:
		return nil
	}

	event := &Event{
		Timestamp: input.Time,
		Type:      eventType,
		From:      c.ui.Kind(),
		To:        next.Kind(),
		Selection: Selection(next),
	}
	c.ui = next
	return event
}

// UI returns the current navigation state.
func (c *Controller) UI() UI {
	return c.ui
}

// Pressed returns the debounced button level.
func (c *Controller) Pressed() bool {
	return c.button.Pressed()
}

// EventCountsSnapshot returns a copy of the gesture counters.
func (c *Controller) EventCountsSnapshot() EventCounts {
	return c.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}

	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.eventCounts,
	}
}
