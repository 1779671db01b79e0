// Event flags shared between the button sampler and the LED driver
// Modeled on an RTOS event group: set is idempotent, clear returns the prior value
package core

import "sync/atomic"

// Button pressed event bit (flag)
const (
	BTN_PRESSED_Pos = 0
	BTN_PRESSED_Msk = 1 << BTN_PRESSED_Pos
)

// EventFlags is a small bitset signaling primitive.
//
// SetBits may be called from any goroutine (or interrupt context on tinygo)
// concurrently with ClearBits. Every bit that was set before a ClearBits call
// takes effect is reported by exactly one ClearBits call.
type EventFlags struct {
	bits uint32
}

// NewEventFlags creates an event flag group with all bits cleared
func NewEventFlags() *EventFlags {
	return &EventFlags{}
}

// SetBits sets the bits in mask and returns the bit value after the set
func (f *EventFlags) SetBits(mask uint32) uint32 {
	for {
		old := atomic.LoadUint32(&f.bits)
		updated := old | mask
		if old == updated {
			// Already set, nothing to publish
			return updated
		}
		if atomic.CompareAndSwapUint32(&f.bits, old, updated) {
			return updated
		}
	}
}

// ClearBits clears the bits in mask and returns the bit value before the clear.
// Read and clear happen in one atomic step.
func (f *EventFlags) ClearBits(mask uint32) uint32 {
	for {
		old := atomic.LoadUint32(&f.bits)
		if old&mask == 0 {
			return old
		}
		if atomic.CompareAndSwapUint32(&f.bits, old, old&^mask) {
			return old
		}
	}
}

// GetBits returns a snapshot of the current bit values
func (f *EventFlags) GetBits() uint32 {
	return atomic.LoadUint32(&f.bits)
}
