//go:build rp2040

package main

import (
	"machine"

	"blinky/targets/pio"
)

func newPIOLEDOutput(pin machine.Pin) (ledOutput, error) {
	led, err := pio.NewPIOLED(pin)
	if err != nil {
		return nil, err
	}
	return led, nil
}
