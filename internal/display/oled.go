package display

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// OLED is a Canvas on an SSD1306 128x64 panel attached over I2C.
type OLED struct {
	*Canvas
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// OpenOLED initializes the host drivers, opens the I2C bus (empty name
// selects the first bus) and the SSD1306 at its default address.
func OpenOLED(busName string) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	opts := ssd1306.DefaultOpts
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	return &OLED{
		Canvas: NewCanvas(dev),
		bus:    bus,
		dev:    dev,
	}, nil
}

// Close blanks the panel and releases the bus.
func (o *OLED) Close() error {
	var errs []error

	if err := o.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt display: %w", err))
	}
	if err := o.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
