//go:build rp2040 || rp2350

package main

import (
	"blinky/core"
)

// ledOutput is a non-GPIO LED backend (PIO, addressable pixel)
type ledOutput interface {
	Set(on bool) error
	Get() bool
}

// ledOverlayDriver routes writes to one pin through a ledOutput and passes
// every other pin to the board GPIO driver.
type ledOverlayDriver struct {
	core.GPIODriver
	pin core.GPIOPin
	led ledOutput
}

func newLEDOverlay(base core.GPIODriver, pin core.GPIOPin, led ledOutput) *ledOverlayDriver {
	return &ledOverlayDriver{GPIODriver: base, pin: pin, led: led}
}

func (d *ledOverlayDriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin == d.pin {
		// Backend configured the pin in its own Init
		return nil
	}
	return d.GPIODriver.ConfigureOutput(pin)
}

func (d *ledOverlayDriver) SetPin(pin core.GPIOPin, value bool) error {
	if pin == d.pin {
		return d.led.Set(value)
	}
	return d.GPIODriver.SetPin(pin, value)
}

func (d *ledOverlayDriver) TogglePin(pin core.GPIOPin) error {
	if pin == d.pin {
		return d.led.Set(!d.led.Get())
	}
	return d.GPIODriver.TogglePin(pin)
}

func (d *ledOverlayDriver) GetPin(pin core.GPIOPin) (bool, error) {
	if pin == d.pin {
		return d.led.Get(), nil
	}
	return d.GPIODriver.GetPin(pin)
}

func (d *ledOverlayDriver) ReadPin(pin core.GPIOPin) bool {
	if pin == d.pin {
		return d.led.Get()
	}
	return d.GPIODriver.ReadPin(pin)
}
