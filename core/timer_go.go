//go:build !tinygo

package core

import "sync"

// On the host the tick counter is written by the simulator goroutine and read
// by the periodic tasks, so it needs a lock.
var (
	systemTicksMu sync.RWMutex
	systemTicks   uint32
)

// getSystemTicks returns the current system ticks (regular Go implementation)
func getSystemTicks() uint32 {
	systemTicksMu.RLock()
	defer systemTicksMu.RUnlock()
	return systemTicks
}

// setSystemTicks sets the system ticks (regular Go implementation)
func setSystemTicks(ticks uint32) {
	systemTicksMu.Lock()
	systemTicks = ticks
	systemTicksMu.Unlock()
}
