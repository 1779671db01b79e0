package core

// TimerFreq is the system tick rate. Both RP2040 and RP2350 expose a 1MHz
// microsecond timer, so one tick is one microsecond.
const (
	TimerFreq = 1000000
)

var (
	bootTime uint32 // Tick count when TimerInit ran
)

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// GetUptime returns ticks elapsed since TimerInit, wrap-safe for one 32-bit period
func GetUptime() uint32 {
	return GetTime() - bootTime
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return ms * (TimerFreq / 1000)
}

// TimerToMS converts timer ticks to milliseconds
func TimerToMS(ticks uint32) uint32 {
	return ticks / (TimerFreq / 1000)
}

// TimerInit records the boot time
func TimerInit() {
	bootTime = GetTime()
}

// timeBefore reports whether a is strictly before b, handling 32-bit wraparound
func timeBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
