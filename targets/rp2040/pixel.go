//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// PixelColor is the color shown when the LED is on
var PixelColor = color.RGBA{R: 0x00, G: 0x00, B: 0x40, A: 0xff}

// PixelLED shows the LED state on a single WS2812 pixel.
// The pixel has no readable state, so the level is kept here; the level
// follows pin semantics (an active-low setup lights the pixel on low).
type PixelLED struct {
	dev       ws2812.Device
	activeLow bool
	level     bool
	buf       [1]color.RGBA
}

// NewPixelLED configures pin as the pixel data line
func NewPixelLED(pin machine.Pin, activeLow bool) *PixelLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &PixelLED{
		dev:       ws2812.New(pin),
		activeLow: activeLow,
	}
}

// Set writes a pin level and refreshes the pixel
func (p *PixelLED) Set(level bool) error {
	p.level = level
	if level != p.activeLow {
		p.buf[0] = PixelColor
	} else {
		p.buf[0] = color.RGBA{}
	}
	return p.dev.WriteColors(p.buf[:])
}

// Get returns the last written level
func (p *PixelLED) Get() bool {
	return p.level
}
