//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const consumer = "pippo"

// RealReader reads the button from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip *gpiocdev.Chip
	pin  *gpiocdev.Line
}

// NewRealReader requests the button line on the named chip.
func NewRealReader(chipName string, pin int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// The button shorts the line to GND, so enable the pull-up and let the
	// kernel invert the level: a value of 1 means pressed.
	line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}

	return &RealReader{
		chip: chip,
		pin:  line,
	}, nil
}

// Read returns whether the button is pressed.
func (r *RealReader) Read() (bool, error) {
	v, err := r.pin.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return v == 1, nil
}

// Close releases GPIO resources.
func (r *RealReader) Close() error {
	var errs []error

	if r.pin != nil {
		if err := r.pin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealWriter drives an output line on actual hardware.
type RealWriter struct {
	chip *gpiocdev.Chip
	pin  *gpiocdev.Line
	name string
}

// NewRealWriter requests pin on the named chip as an output, initially low.
// name is used in error messages.
func NewRealWriter(chipName string, pin int, name string) (*RealWriter, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request %s pin %d: %w", name, pin, err)
	}

	return &RealWriter{
		chip: chip,
		pin:  line,
		name: name,
	}, nil
}

// Set drives the line high or low.
func (w *RealWriter) Set(high bool) error {
	v := 0
	if high {
		v = 1
	}
	if err := w.pin.SetValue(v); err != nil {
		return fmt.Errorf("set %s pin: %w", w.name, err)
	}
	return nil
}

// Close releases GPIO resources.
// Drives the line low and reconfigures it as an input with pull-down
// (matching Pi boot defaults) before closing, so nothing is left energized.
func (w *RealWriter) Close() error {
	var errs []error

	if w.pin != nil {
		if err := w.pin.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("drive %s pin low: %w", w.name, err))
		}
		if err := w.pin.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", w.name, err))
		}
		if err := w.pin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", w.name, err))
		}
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
