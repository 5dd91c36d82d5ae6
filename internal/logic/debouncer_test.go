package logic

import (
	"testing"
	"time"
)

var testStart = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type edgeAt struct {
	at   time.Duration
	edge Edge
}

// drive samples level every step from 0 up to (but excluding) until and
// returns every non-None edge with its offset from testStart.
func drive(d *Debouncer, step, until time.Duration, level func(time.Duration) bool) []edgeAt {
	var out []edgeAt
	for off := time.Duration(0); off < until; off += step {
		if e := d.Sample(level(off), testStart.Add(off)); e != EdgeNone {
			out = append(out, edgeAt{at: off, edge: e})
		}
	}
	return out
}

// heldBetween returns a level function that is pressed in [from, to).
func heldBetween(from, to time.Duration) func(time.Duration) bool {
	return func(off time.Duration) bool {
		return off >= from && off < to
	}
}

func TestNewDebouncer(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)
	if d == nil {
		t.Fatal("NewDebouncer returned nil")
	}
	if d.debounceDuration != 30*time.Millisecond {
		t.Errorf("expected debounce 30ms, got %v", d.debounceDuration)
	}
	if d.longPressDuration != 1600*time.Millisecond {
		t.Errorf("expected long press 1600ms, got %v", d.longPressDuration)
	}
	if d.Pressed() {
		t.Error("new debouncer should not be pressed")
	}
	if d.LongFired() {
		t.Error("new debouncer should not have fired a long press")
	}
}

func TestIdleLineProducesNoEvents(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)
	edges := drive(d, 10*time.Millisecond, 5*time.Second, func(time.Duration) bool { return false })
	if len(edges) != 0 {
		t.Errorf("expected no events on idle line, got %v", edges)
	}
}

func TestBounceNeverStabilizes(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)

	// true,false,true,false,... every 10ms: never constant for 30ms
	level := func(off time.Duration) bool {
		return (off/(10*time.Millisecond))%2 == 0
	}
	for off := time.Duration(0); off < 3*time.Second; off += 10 * time.Millisecond {
		if e := d.Sample(level(off), testStart.Add(off)); e != EdgeNone {
			t.Fatalf("at %v: expected no event while bouncing, got %s", off, e)
		}
		if d.Pressed() {
			t.Fatalf("at %v: stable level changed while bouncing", off)
		}
	}
}

func TestBounceThenSettle(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)

	// true,false,true then held; the last change is at 20ms
	samples := []struct {
		off time.Duration
		raw bool
	}{
		{0, true},
		{10 * time.Millisecond, false},
		{20 * time.Millisecond, true},
		{30 * time.Millisecond, true},
		{40 * time.Millisecond, true},
	}
	for _, s := range samples {
		if e := d.Sample(s.raw, testStart.Add(s.off)); e != EdgeNone {
			t.Fatalf("at %v: expected no event before settling, got %s", s.off, e)
		}
	}

	if e := d.Sample(true, testStart.Add(50*time.Millisecond)); e != EdgePressed {
		t.Errorf("expected pressed 30ms after the last bounce, got %s", e)
	}
}

func TestPressShorterThanWindowIgnored(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)
	edges := drive(d, 10*time.Millisecond, time.Second, heldBetween(0, 20*time.Millisecond))
	if len(edges) != 0 {
		t.Errorf("expected glitch to be ignored, got %v", edges)
	}
	if d.Pressed() {
		t.Error("glitch should not change stable level")
	}
}

func TestShortPress(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)
	edges := drive(d, 10*time.Millisecond, time.Second, heldBetween(0, 500*time.Millisecond))

	want := []edgeAt{
		{30 * time.Millisecond, EdgePressed},
		{530 * time.Millisecond, EdgeReleased},
	}
	if len(edges) != len(want) {
		t.Fatalf("expected %v, got %v", want, edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}
	if d.LongFired() {
		t.Error("short press should not fire a long press")
	}
}

func TestLongPressHeldTwoSeconds(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)
	edges := drive(d, 10*time.Millisecond, 3*time.Second, heldBetween(0, 2000*time.Millisecond))

	want := []edgeAt{
		{30 * time.Millisecond, EdgePressed},
		{1630 * time.Millisecond, EdgeLongPress},
		{2030 * time.Millisecond, EdgeReleased},
	}
	if len(edges) != len(want) {
		t.Fatalf("expected %v, got %v", want, edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}
	if !d.LongFired() {
		t.Error("release after long press should keep LongFired set")
	}
}

func TestLongPressFiresOnce(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)
	edges := drive(d, 20*time.Millisecond, 30*time.Second, heldBetween(0, 25*time.Second))

	longs := 0
	for _, e := range edges {
		if e.edge == EdgeLongPress {
			longs++
		}
	}
	if longs != 1 {
		t.Errorf("expected exactly 1 long press for a 25s hold, got %d", longs)
	}
}

func TestLongFiredResetsOnNextPress(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)

	// Long hold, then a short press
	level := func(off time.Duration) bool {
		return off < 2*time.Second || (off >= 3*time.Second && off < 3200*time.Millisecond)
	}

	for off := time.Duration(0); off < 3*time.Second; off += 10 * time.Millisecond {
		d.Sample(level(off), testStart.Add(off))
	}
	if !d.LongFired() {
		t.Fatal("expected LongFired after first hold")
	}

	var sawPressed bool
	for off := 3 * time.Second; off < 4*time.Second; off += 10 * time.Millisecond {
		e := d.Sample(level(off), testStart.Add(off))
		if e == EdgePressed {
			sawPressed = true
			if d.LongFired() {
				t.Error("LongFired should reset on the rising edge")
			}
		}
		if e == EdgeLongPress {
			t.Error("short second press should not fire a long press")
		}
	}
	if !sawPressed {
		t.Error("expected second press to register")
	}
}

func TestReleaseJustPastThresholdFiresLongFirst(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)

	// Physical hold of 1610ms; the long press has not fired by the time the
	// line goes low, but the hold crossed the threshold.
	edges := drive(d, 10*time.Millisecond, 2*time.Second, heldBetween(0, 1610*time.Millisecond))

	want := []edgeAt{
		{30 * time.Millisecond, EdgePressed},
		{1640 * time.Millisecond, EdgeLongPress},
		{1650 * time.Millisecond, EdgeReleased},
	}
	if len(edges) != len(want) {
		t.Fatalf("expected %v, got %v", want, edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}
}

func TestReleaseJustBeforeThresholdIsShort(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)
	edges := drive(d, 10*time.Millisecond, 3*time.Second, heldBetween(0, 1590*time.Millisecond))

	for _, e := range edges {
		if e.edge == EdgeLongPress {
			t.Fatalf("1590ms hold should not fire a long press: %v", edges)
		}
	}
	if len(edges) != 2 || edges[1].edge != EdgeReleased {
		t.Fatalf("expected pressed then released, got %v", edges)
	}
	if d.LongFired() {
		t.Error("LongFired should be false after a short hold")
	}
}

func TestIndicatorFollowsStableLevel(t *testing.T) {
	d := NewDebouncer(DefaultDebounce, DefaultLongPress)

	d.Sample(true, testStart)
	if d.Pressed() {
		t.Error("should not be pressed before debounce window")
	}
	d.Sample(true, testStart.Add(30*time.Millisecond))
	if !d.Pressed() {
		t.Error("should be pressed after debounce window")
	}
	d.Sample(false, testStart.Add(40*time.Millisecond))
	if !d.Pressed() {
		t.Error("should stay pressed until release is stable")
	}
	d.Sample(false, testStart.Add(70*time.Millisecond))
	if d.Pressed() {
		t.Error("should be released after debounce window")
	}
}

func TestEdgeString(t *testing.T) {
	tests := map[Edge]string{
		EdgeNone:      "none",
		EdgePressed:   "pressed",
		EdgeReleased:  "released",
		EdgeLongPress: "long-press",
		Edge(42):      "INVALID",
	}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("Edge(%d).String(): got %q, want %q", e, got, want)
		}
	}
}
