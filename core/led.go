// LED toggling driven by the button pressed event flag
package core

import "sync/atomic"

// DefaultTogglePeriodMS is the LED driver tick interval.
// A full on/off blink cycle takes two ticks.
const DefaultTogglePeriodMS = 200

// LEDToggler holds the blink enable latch and drives the LED pin.
//
// On every tick it reads and clears BTN_PRESSED_Msk. A consumed flag flips
// the latch and forces the LED off; while the latch is enabled the LED is
// toggled, so the first toggle after an enable turns it on.
type LEDToggler struct {
	Pin       GPIOPin
	ActiveLow bool // LED lights when the pin is driven low

	gpio  GPIODriver
	flags *EventFlags

	toggleEn  uint32 // latch, accessed atomically so it can be observed
	toggles   uint32
	pinErrors uint32
}

// NewLEDToggler creates a toggler with blinking disabled
func NewLEDToggler(gpio GPIODriver, pin GPIOPin, flags *EventFlags, activeLow bool) *LEDToggler {
	return &LEDToggler{
		Pin:       pin,
		ActiveLow: activeLow,
		gpio:      gpio,
		flags:     flags,
	}
}

// Tick runs one driver step
func (l *LEDToggler) Tick() {
	// Get the button pressed event bit and clear it
	bits := l.flags.ClearBits(BTN_PRESSED_Msk)
	if bits&BTN_PRESSED_Msk != 0 {
		RecordEvent(EvtFlagConsumed, bits)
		if atomic.LoadUint32(&l.toggleEn) == 0 {
			atomic.StoreUint32(&l.toggleEn, 1)
			RecordEvent(EvtBlinkEnable, 0)
		} else {
			atomic.StoreUint32(&l.toggleEn, 0)
			RecordEvent(EvtBlinkDisable, 0)
		}
		// A fresh enable starts from off; a disable must not leave it lit
		l.Off()
	}
	if atomic.LoadUint32(&l.toggleEn) != 0 {
		l.toggle()
	}
}

// Off drives the LED to its off level
func (l *LEDToggler) Off() {
	if err := l.gpio.SetPin(l.Pin, l.ActiveLow); err != nil {
		l.pinError()
		return
	}
	RecordEvent(EvtLEDOff, 0)
}

func (l *LEDToggler) toggle() {
	if err := l.gpio.TogglePin(l.Pin); err != nil {
		l.pinError()
		return
	}
	RecordEvent(EvtLEDToggle, atomic.AddUint32(&l.toggles, 1))
}

// Pin writes are fire-and-forget; failures are only counted
func (l *LEDToggler) pinError() {
	atomic.AddUint32(&l.pinErrors, 1)
	RecordEvent(EvtPinError, uint32(l.Pin))
}

// Enabled reports whether blinking is on
func (l *LEDToggler) Enabled() bool {
	return atomic.LoadUint32(&l.toggleEn) != 0
}

// LEDStats is a snapshot of driver counters
type LEDStats struct {
	Enabled   bool
	Toggles   uint32
	PinErrors uint32
}

// Stats returns the driver counters
func (l *LEDToggler) Stats() LEDStats {
	return LEDStats{
		Enabled:   l.Enabled(),
		Toggles:   atomic.LoadUint32(&l.toggles),
		PinErrors: atomic.LoadUint32(&l.pinErrors),
	}
}

// LEDDriver is a scheduling strategy for an LEDToggler.
// Both implementations run the same Tick and are interchangeable.
type LEDDriver interface {
	PeriodicTask
	Toggler() *LEDToggler
}

// LEDToggleTask runs the toggler as a task that wakes every period
type LEDToggleTask struct {
	*TaskRunner
	toggler *LEDToggler
}

// NewLEDToggleTask wraps toggler in a task loop with the given period in ticks
func NewLEDToggleTask(toggler *LEDToggler, period uint32) *LEDToggleTask {
	return &LEDToggleTask{
		TaskRunner: NewTaskRunner("led_toggle_task", toggler, period),
		toggler:    toggler,
	}
}

// Tick runs the driver step directly, bypassing the wait
func (t *LEDToggleTask) Tick() {
	t.toggler.Tick()
}

// Toggler returns the wrapped toggler
func (t *LEDToggleTask) Toggler() *LEDToggler {
	return t.toggler
}

// LEDToggleTimer runs the toggler from an auto-reload software timer callback
type LEDToggleTimer struct {
	*PeriodicTimer
	toggler *LEDToggler
}

// NewLEDToggleTimer wraps toggler in a periodic timer with the given period in ticks
func NewLEDToggleTimer(toggler *LEDToggler, period uint32) *LEDToggleTimer {
	return &LEDToggleTimer{
		PeriodicTimer: NewPeriodicTimer("led_toggle_timer", toggler, period),
		toggler:       toggler,
	}
}

// Tick runs the timer callback body directly
func (t *LEDToggleTimer) Tick() {
	t.toggler.Tick()
}

// Toggler returns the wrapped toggler
func (t *LEDToggleTimer) Toggler() *LEDToggler {
	return t.toggler
}
