// Button sampling with single-sample press edge detection
package core

import "sync/atomic"

// ButtonState is the logical state of the push-button
type ButtonState uint8

const (
	ButtonPressed ButtonState = iota
	ButtonNotPressed
)

// DefaultSamplePeriodMS is the button sampling interval
const DefaultSamplePeriodMS = 20

func (s ButtonState) String() string {
	if s == ButtonPressed {
		return "pressed"
	}
	return "not_pressed"
}

// ButtonSampler reads a button pin once per tick and sets BTN_PRESSED_Msk
// in the event flags on every not-pressed to pressed transition.
//
// The button is active-low (wired to ground with the pin pulled up), so a
// low level reads as pressed. There is no multi-sample debounce: a bouncing
// contact that is sampled high between two lows produces a second edge.
type ButtonSampler struct {
	Pin   GPIOPin
	gpio  GPIODriver
	flags *EventFlags

	prevState uint32 // ButtonState, read by observers on other goroutines
	edges     uint32
}

// NewButtonSampler creates a sampler whose previous state starts as not pressed
func NewButtonSampler(gpio GPIODriver, pin GPIOPin, flags *EventFlags) *ButtonSampler {
	return &ButtonSampler{
		Pin:       pin,
		gpio:      gpio,
		flags:     flags,
		prevState: uint32(ButtonNotPressed),
	}
}

// Sample reads the pin and maps the level to a ButtonState
func (b *ButtonSampler) Sample() ButtonState {
	if b.gpio.ReadPin(b.Pin) {
		return ButtonNotPressed
	}
	return ButtonPressed
}

// Tick samples the button once and signals a press edge
func (b *ButtonSampler) Tick() {
	currState := b.Sample()
	if currState == ButtonPressed && b.State() == ButtonNotPressed {
		b.flags.SetBits(BTN_PRESSED_Msk)
		RecordEvent(EvtButtonEdge, atomic.AddUint32(&b.edges, 1))
	}
	atomic.StoreUint32(&b.prevState, uint32(currState))
}

// State returns the state seen on the last tick
func (b *ButtonSampler) State() ButtonState {
	return ButtonState(atomic.LoadUint32(&b.prevState))
}

// Edges returns the number of press edges detected so far
func (b *ButtonSampler) Edges() uint32 {
	return atomic.LoadUint32(&b.edges)
}
