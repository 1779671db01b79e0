//go:build rp2350

package main

import (
	"errors"
	"machine"
)

func newPIOLEDOutput(pin machine.Pin) (ledOutput, error) {
	return nil, errors.New("pio led backend is only built for rp2040")
}
