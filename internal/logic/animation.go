package logic

import (
	"math/rand/v2"
	"time"
)

// Default face timings.
const (
	DefaultBlinkMin  = 4000 * time.Millisecond
	DefaultBlinkMax  = 7000 * time.Millisecond
	DefaultBlinkHold = 100 * time.Millisecond

	DefaultIdleMin  = 10 * time.Second
	DefaultIdleMax  = 20 * time.Second
	DefaultIdleHold = 1500 * time.Millisecond
)

// IntervalSource yields the duration of the next resting phase.
type IntervalSource interface {
	Next() time.Duration
}

// RandomInterval draws durations uniformly from [Min, Max].
type RandomInterval struct {
	Min, Max time.Duration
	rng      *rand.Rand
}

// NewRandomInterval creates a RandomInterval seeded with seed.
func NewRandomInterval(min, max time.Duration, seed uint64) *RandomInterval {
	return &RandomInterval{
		Min: min,
		Max: max,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns a duration in [Min, Max].
func (r *RandomInterval) Next() time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(r.rng.Int64N(int64(r.Max-r.Min)+1))
}

// Cycle is a two-phase timer: a resting phase of randomized length followed
// by an active phase of fixed length.
type Cycle struct {
	active     bool
	lastToggle time.Time
	interval   time.Duration
	hold       time.Duration
	rest       IntervalSource
}

// NewCycle creates a cycle that starts resting at start.
func NewCycle(start time.Time, hold time.Duration, rest IntervalSource) *Cycle {
	return &Cycle{
		lastToggle: start,
		interval:   rest.Next(),
		hold:       hold,
		rest:       rest,
	}
}

// Advance moves the cycle forward to now and reports whether the phase changed.
func (c *Cycle) Advance(now time.Time) bool {
	elapsed := now.Sub(c.lastToggle)
	if !c.active {
		if elapsed < c.interval {
			return false
		}
		c.active = true
		c.lastToggle = now
		return true
	}

	if elapsed < c.hold {
		return false
	}
	c.active = false
	c.interval = c.rest.Next()
	c.lastToggle = now
	return true
}

// Active reports whether the cycle is in its active phase.
func (c *Cycle) Active() bool {
	return c.active
}

// Interval returns the length of the current (or upcoming) resting phase.
func (c *Cycle) Interval() time.Duration {
	return c.interval
}

// FaceState is what the face screen draws.
type FaceState struct {
	EyesOpen   bool
	Expression bool
}

// Face runs the blink cycle and the optional idle-expression cycle against
// the same clock.
type Face struct {
	blink *Cycle
	idle  *Cycle
}

// NewFace creates a face. idle may be nil to disable the idle expression.
func NewFace(blink, idle *Cycle) *Face {
	return &Face{blink: blink, idle: idle}
}

// Advance moves both cycles to now and reports whether the face changed.
func (f *Face) Advance(now time.Time) bool {
	changed := f.blink.Advance(now)
	if f.idle != nil && f.idle.Advance(now) {
		changed = true
	}
	return changed
}

// State returns the current face.
func (f *Face) State() FaceState {
	return FaceState{
		EyesOpen:   !f.blink.Active(),
		Expression: f.idle != nil && f.idle.Active(),
	}
}
