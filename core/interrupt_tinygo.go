//go:build tinygo

package core

import "runtime/interrupt"

// State is the saved interrupt mask
type State = interrupt.State

// disableInterrupts masks interrupts and returns the previous state
func disableInterrupts() State {
	return interrupt.Disable()
}

// restoreInterrupts restores the saved interrupt mask
func restoreInterrupts(state State) {
	interrupt.Restore(state)
}
