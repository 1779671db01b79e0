//go:build rp2040 || rp2350

package main

import (
	"blinky/core"
	"runtime/volatile"
	"time"
	"unsafe"
)

// Timer peripheral register offset; timerBase is per chip
const (
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word, no latching side effects
)

var (
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// GetHardwareTime reads the low 32 bits of the 1MHz microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// UpdateSystemTime copies the hardware counter into the core tick counter.
// Called from the main loop before timers are dispatched.
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}

// hardwareClock is a core.Clock that reads the timer peripheral directly,
// so task loops keep their phase even if the main loop is busy
type hardwareClock struct{}

func (hardwareClock) Now() uint32 {
	return GetHardwareTime()
}

func (hardwareClock) SleepUntil(deadline uint32) {
	for {
		now := GetHardwareTime()
		if int32(now-deadline) >= 0 {
			return
		}
		time.Sleep(time.Duration(deadline-now) * time.Microsecond)
	}
}
