package logic

import "time"

// Default button timings.
const (
	DefaultDebounce  = 30 * time.Millisecond
	DefaultLongPress = 1600 * time.Millisecond
)

// ButtonState is the persistent debounce state of the button.
type ButtonState struct {
	// Current stable (debounced) level
	Stable bool
	// Last raw level observed
	RawLast bool
	// Time when the raw level last changed
	ChangedAt time.Time
	// Time of the last debounced rising edge
	PressedAt time.Time
	// Whether the long press already fired for the current press
	LongFired bool
}

// Debouncer turns raw button samples into debounced edges.
type Debouncer struct {
	debounceDuration  time.Duration
	longPressDuration time.Duration
	state             ButtonState
}

// NewDebouncer creates a debouncer with the given debounce window and
// long-press threshold.
func NewDebouncer(debounceDuration, longPressDuration time.Duration) *Debouncer {
	return &Debouncer{
		debounceDuration:  debounceDuration,
		longPressDuration: longPressDuration,
	}
}

// Sample takes the raw level (true = pressed) at now and returns at most one
// edge. Edges are only evaluated once the raw level has been constant for the
// debounce window.
//
// If the hold crossed the long-press threshold by the time the release
// becomes stable, LongPress is returned first and Released on the next sample.
func (d *Debouncer) Sample(raw bool, now time.Time) Edge {
	s := &d.state

	if raw != s.RawLast {
		s.RawLast = raw
		s.ChangedAt = now
	}

	if now.Sub(s.ChangedAt) < d.debounceDuration {
		return EdgeNone
	}

	// Rising edge
	if raw && !s.Stable {
		s.Stable = true
		s.PressedAt = now
		s.LongFired = false
		return EdgePressed
	}

	// Held past the threshold; fires once per press
	if s.Stable && !s.LongFired && now.Sub(s.PressedAt) >= d.longPressDuration {
		s.LongFired = true
		return EdgeLongPress
	}

	// Falling edge
	if !raw && s.Stable {
		s.Stable = false
		return EdgeReleased
	}

	return EdgeNone
}

// Pressed returns the debounced level.
func (d *Debouncer) Pressed() bool {
	return d.state.Stable
}

// LongFired reports whether the current (or just released) press fired a
// long press. It resets on the next rising edge.
func (d *Debouncer) LongFired() bool {
	return d.state.LongFired
}

// State returns a copy of the debounce state.
func (d *Debouncer) State() ButtonState {
	return d.state
}
