package gpio

import (
	"sync"
	"time"
)

// Pulser drives an output high for a fixed duration on request. It may be
// called from any goroutine; the lock is held only around each Set call, never
// across the pulse itself.
type Pulser struct {
	mu    sync.Mutex
	out   Writer
	width time.Duration
	sleep func(time.Duration)
}

// NewPulser creates a Pulser for out with the given pulse width.
func NewPulser(out Writer, width time.Duration) *Pulser {
	return &Pulser{
		out:   out,
		width: width,
		sleep: time.Sleep,
	}
}

// Pulse drives the line high, waits for the pulse width and drives it low.
// The line is driven low even if driving it high failed.
func (p *Pulser) Pulse() error {
	errHigh := p.set(true)
	if errHigh == nil {
		p.sleep(p.width)
	}
	if err := p.set(false); err != nil {
		return err
	}
	return errHigh
}

// Width returns the pulse width.
func (p *Pulser) Width() time.Duration {
	return p.width
}

func (p *Pulser) set(high bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Set(high)
}
