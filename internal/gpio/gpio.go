// Package gpio provides button input and digital outputs with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Reader reads the button line.
type Reader interface {
	// Read returns whether the button is pressed.
	// The line is active-low with a pull-up: electrically low = pressed.
	Read() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Writer drives a digital output line.
type Writer interface {
	// Set drives the line high (true) or low (false).
	Set(high bool) error

	// Close releases GPIO resources.
	Close() error
}

// Default chip and pin definitions (BCM numbering)
const (
	DefaultChip      = "gpiochip0"
	DefaultPinButton = 23 // push-button to GND
	DefaultPinLED    = 2  // status indicator
	DefaultPinBuzzer = 5  // auxiliary actuator
)
