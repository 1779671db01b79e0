// Package sim runs the firmware core on a PC: an in-memory GPIO bank stands
// in for the board and a wall clock drives the scheduler.
package sim

import (
	"fmt"
	"sync"

	"blinky/core"
)

// PinMode is how a simulated pin was configured
type PinMode uint8

const (
	PinUnconfigured PinMode = iota
	PinOutput
	PinInputPullUp
	PinInputPullDown
)

// simPin is one simulated pin. Inputs float to their pull level unless driven.
type simPin struct {
	mode   PinMode
	level  bool
	driven bool
}

// GPIO is an in-memory core.GPIODriver
type GPIO struct {
	mu   sync.Mutex
	pins map[core.GPIOPin]*simPin

	// OnOutput is called with the new level whenever an output pin is written
	OnOutput func(pin core.GPIOPin, level bool)
}

// NewGPIO creates an empty pin bank
func NewGPIO() *GPIO {
	return &GPIO{pins: make(map[core.GPIOPin]*simPin)}
}

func (g *GPIO) pin(pin core.GPIOPin) *simPin {
	p, ok := g.pins[pin]
	if !ok {
		p = &simPin{}
		g.pins[pin] = p
	}
	return p
}

func (g *GPIO) configure(pin core.GPIOPin, mode PinMode) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.pin(pin)
	if p.mode != PinUnconfigured && p.mode != mode {
		return fmt.Errorf("pin %d already configured as mode %d", pin, p.mode)
	}
	p.mode = mode
	if !p.driven {
		p.level = mode == PinInputPullUp
	}
	return nil
}

func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	return g.configure(pin, PinOutput)
}

func (g *GPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	return g.configure(pin, PinInputPullUp)
}

func (g *GPIO) ConfigureInputPullDown(pin core.GPIOPin) error {
	return g.configure(pin, PinInputPullDown)
}

func (g *GPIO) write(pin core.GPIOPin, update func(bool) bool) error {
	g.mu.Lock()
	p := g.pin(pin)
	if p.mode != PinOutput {
		g.mu.Unlock()
		return fmt.Errorf("pin %d is not an output", pin)
	}
	p.level = update(p.level)
	level := p.level
	onOutput := g.OnOutput
	g.mu.Unlock()

	if onOutput != nil {
		onOutput(pin, level)
	}
	return nil
}

func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	return g.write(pin, func(bool) bool { return value })
}

func (g *GPIO) TogglePin(pin core.GPIOPin) error {
	return g.write(pin, func(level bool) bool { return !level })
}

func (g *GPIO) GetPin(pin core.GPIOPin) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.pin(pin)
	if p.mode == PinUnconfigured {
		return false, fmt.Errorf("pin %d is not configured", pin)
	}
	return p.level, nil
}

func (g *GPIO) ReadPin(pin core.GPIOPin) bool {
	level, err := g.GetPin(pin)
	if err != nil {
		return true
	}
	return level
}

// Drive forces an input to a level, as a switch closing or opening would
func (g *GPIO) Drive(pin core.GPIOPin, level bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.pin(pin)
	p.level = level
	p.driven = true
}

// Release stops driving an input so it returns to its pull level
func (g *GPIO) Release(pin core.GPIOPin) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.pin(pin)
	p.driven = false
	switch p.mode {
	case PinInputPullUp:
		p.level = true
	case PinInputPullDown:
		p.level = false
	}
}

// Mode returns how a pin was configured
func (g *GPIO) Mode(pin core.GPIOPin) PinMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pin(pin).mode
}
