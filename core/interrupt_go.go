//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// On the host the "interrupt disable" is a global lock so scheduler state
// stays consistent when the simulator dispatches from another goroutine.
var criticalMu sync.Mutex

// disableInterrupts enters the critical section
func disableInterrupts() State {
	criticalMu.Lock()
	return 0
}

// restoreInterrupts leaves the critical section
func restoreInterrupts(state State) {
	criticalMu.Unlock()
}
