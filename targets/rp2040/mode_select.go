//go:build rp2040 || rp2350

package main

import (
	"blinky/core"
	"machine"
)

// LEDBackend selects what drives the LED
type LEDBackend uint8

const (
	LEDBackendGPIO  LEDBackend = iota // Plain GPIO output
	LEDBackendPIO                     // PIO state machine owns the pin (rp2040 only)
	LEDBackendPixel                   // Single WS2812 pixel on the LED pin
)

// ModeConfig determines how the firmware is put together
type ModeConfig struct {
	// LED driver scheduling: core.ModeTask runs a polling task loop,
	// core.ModeTimer runs an auto-reload software timer callback
	Driver core.DriverMode

	LED LEDBackend

	// Board wiring
	ButtonPin    machine.Pin
	LEDPin       machine.Pin
	LEDActiveLow bool

	// Print event lines on the USB console
	Debug bool
}

// GetMode returns the compile-time configuration.
// Change the values here to switch driver strategy or LED backend.
func GetMode() ModeConfig {
	return ModeConfig{
		Driver:       core.ModeTask,
		LED:          LEDBackendGPIO,
		ButtonPin:    machine.GPIO15,
		LEDPin:       machine.LED,
		LEDActiveLow: false,
		Debug:        true,
	}
}

// coreConfig converts the board configuration to the core configuration
func (m ModeConfig) coreConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.ButtonPin = core.GPIOPin(m.ButtonPin)
	cfg.LEDPin = core.GPIOPin(m.LEDPin)
	cfg.LEDActiveLow = m.LEDActiveLow
	cfg.Mode = m.Driver
	return cfg
}
