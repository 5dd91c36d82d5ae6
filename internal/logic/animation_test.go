package logic

import (
	"testing"
	"time"
)

// sequence is an IntervalSource that returns scripted durations, repeating
// the last one when exhausted.
type sequence struct {
	values []time.Duration
	calls  int
}

func (s *sequence) Next() time.Duration {
	i := s.calls
	if i >= len(s.values) {
		i = len(s.values) - 1
	}
	s.calls++
	return s.values[i]
}

func TestCycleTimeline(t *testing.T) {
	seq := &sequence{values: []time.Duration{5 * time.Second, 4 * time.Second}}
	c := NewCycle(testStart, 100*time.Millisecond, seq)

	type step struct {
		off     time.Duration
		changed bool
		active  bool
	}
	steps := []step{
		{0, false, false},
		{4980 * time.Millisecond, false, false},
		{5000 * time.Millisecond, true, true},  // close
		{5080 * time.Millisecond, false, true}, // still closed
		{5100 * time.Millisecond, true, false}, // reopen, next interval 4s
		{9080 * time.Millisecond, false, false},
		{9100 * time.Millisecond, true, true},
		{9200 * time.Millisecond, true, false},
	}
	for _, s := range steps {
		changed := c.Advance(testStart.Add(s.off))
		if changed != s.changed {
			t.Errorf("at %v: changed got %v, want %v", s.off, changed, s.changed)
		}
		if c.Active() != s.active {
			t.Errorf("at %v: active got %v, want %v", s.off, c.Active(), s.active)
		}
	}
	if seq.calls != 3 {
		t.Errorf("expected 3 interval draws (start + 2 reopen), got %d", seq.calls)
	}
}

func TestCycleClosedDurationIsFixed(t *testing.T) {
	seq := &sequence{values: []time.Duration{4 * time.Second, 7 * time.Second, 5500 * time.Millisecond}}
	hold := 100 * time.Millisecond
	c := NewCycle(testStart, hold, seq)

	var closedAt time.Time
	var closed []time.Duration
	var opened []time.Duration
	var openedAt = testStart
	for off := time.Duration(0); off < 30*time.Second; off += 20 * time.Millisecond {
		now := testStart.Add(off)
		if !c.Advance(now) {
			continue
		}
		if c.Active() {
			closedAt = now
			opened = append(opened, now.Sub(openedAt))
		} else {
			openedAt = now
			closed = append(closed, now.Sub(closedAt))
		}
	}

	if len(closed) == 0 {
		t.Fatal("expected at least one blink")
	}
	for i, d := range closed {
		if d != hold {
			t.Errorf("blink %d: closed for %v, want %v", i, d, hold)
		}
	}
	for i, d := range opened {
		if d < 4*time.Second || d > 7*time.Second {
			t.Errorf("open phase %d: %v outside [4s, 7s]", i, d)
		}
	}
}

func TestCycleQuietTicksDoNotChange(t *testing.T) {
	c := NewCycle(testStart, 100*time.Millisecond, &sequence{values: []time.Duration{5 * time.Second}})
	changes := 0
	for off := time.Duration(0); off < 4*time.Second; off += 20 * time.Millisecond {
		if c.Advance(testStart.Add(off)) {
			changes++
		}
	}
	if changes != 0 {
		t.Errorf("expected no transitions during open phase, got %d", changes)
	}
}

func TestRandomIntervalRange(t *testing.T) {
	r := NewRandomInterval(DefaultBlinkMin, DefaultBlinkMax, 1)
	for i := 0; i < 1000; i++ {
		d := r.Next()
		if d < DefaultBlinkMin || d > DefaultBlinkMax {
			t.Fatalf("draw %d: %v outside [%v, %v]", i, d, DefaultBlinkMin, DefaultBlinkMax)
		}
	}
}

func TestRandomIntervalDegenerate(t *testing.T) {
	r := NewRandomInterval(time.Second, time.Second, 7)
	if d := r.Next(); d != time.Second {
		t.Errorf("expected 1s, got %v", d)
	}
	r = NewRandomInterval(2*time.Second, time.Second, 7)
	if d := r.Next(); d != 2*time.Second {
		t.Errorf("expected min when max < min, got %v", d)
	}
}

func TestRandomIntervalDeterministicSeed(t *testing.T) {
	a := NewRandomInterval(DefaultBlinkMin, DefaultBlinkMax, 42)
	b := NewRandomInterval(DefaultBlinkMin, DefaultBlinkMax, 42)
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("draw %d differs for identical seeds", i)
		}
	}
}

func TestFaceWithoutIdle(t *testing.T) {
	blink := NewCycle(testStart, 100*time.Millisecond, &sequence{values: []time.Duration{time.Second}})
	f := NewFace(blink, nil)

	if st := f.State(); !st.EyesOpen || st.Expression {
		t.Errorf("expected open eyes and no expression, got %+v", st)
	}
	if !f.Advance(testStart.Add(time.Second)) {
		t.Error("expected change when blink closes")
	}
	if f.State().EyesOpen {
		t.Error("expected eyes closed")
	}
	if f.Advance(testStart.Add(1050 * time.Millisecond)) {
		t.Error("expected no change mid-blink")
	}
	if !f.Advance(testStart.Add(1100 * time.Millisecond)) {
		t.Error("expected change when eyes reopen")
	}
}

func TestFaceIdleRunsIndependently(t *testing.T) {
	blink := NewCycle(testStart, 100*time.Millisecond, &sequence{values: []time.Duration{5 * time.Second}})
	idle := NewCycle(testStart, 1500*time.Millisecond, &sequence{values: []time.Duration{3 * time.Second}})
	f := NewFace(blink, idle)

	if !f.Advance(testStart.Add(3 * time.Second)) {
		t.Fatal("expected idle expression to start at 3s")
	}
	st := f.State()
	if !st.Expression || !st.EyesOpen {
		t.Errorf("expected expression with open eyes, got %+v", st)
	}
	if f.Advance(testStart.Add(4 * time.Second)) {
		t.Error("expected no change at 4s")
	}
	if !f.Advance(testStart.Add(4500 * time.Millisecond)) {
		t.Error("expected expression to end at 4.5s")
	}
	if !f.Advance(testStart.Add(5 * time.Second)) {
		t.Error("expected blink at 5s")
	}
	st = f.State()
	if st.Expression || st.EyesOpen {
		t.Errorf("expected closed eyes and no expression, got %+v", st)
	}
}

func TestFaceSimultaneousTransitionsReportOnce(t *testing.T) {
	blink := NewCycle(testStart, 100*time.Millisecond, &sequence{values: []time.Duration{2 * time.Second}})
	idle := NewCycle(testStart, 500*time.Millisecond, &sequence{values: []time.Duration{2 * time.Second}})
	f := NewFace(blink, idle)

	if !f.Advance(testStart.Add(2 * time.Second)) {
		t.Fatal("expected a change")
	}
	st := f.State()
	if st.EyesOpen || !st.Expression {
		t.Errorf("expected both cycles active, got %+v", st)
	}
}
