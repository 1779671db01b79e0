package core

import "sync/atomic"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a button/LED event for post-mortem analysis
type Event struct {
	EventType uint8  // Event type code
	Clock     uint32 // System clock at event
	Value     uint32 // Context-dependent value
}

// Event type codes
const (
	EvtButtonEdge   = 1 // Press edge detected, flag set
	EvtFlagConsumed = 2 // Driver cleared a pending flag
	EvtBlinkEnable  = 3 // Latch switched to enabled
	EvtBlinkDisable = 4 // Latch switched to disabled
	EvtLEDOff       = 5 // LED forced off
	EvtLEDToggle    = 6 // LED toggled, Value = toggle count
	EvtPinError     = 7 // HAL returned an error, Value = pin
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
	EventPrefix   = "[EVT] "
)

var eventNames = [...]string{
	EvtButtonEdge:   "BUTTON_EDGE",
	EvtFlagConsumed: "FLAG_CONSUMED",
	EvtBlinkEnable:  "BLINK_ENABLE",
	EvtBlinkDisable: "BLINK_DISABLE",
	EvtLEDOff:       "LED_OFF",
	EvtLEDToggle:    "LED_TOGGLE",
	EvtPinError:     "PIN_ERROR",
}

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active. Host tools may
	// flip it while tasks are logging.
	debugEnabled atomic.Bool

	// Event ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]Event
	eventRingHead uint8

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled.Load()
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker(debugChan)
}

func debugOutputWorker(ch <-chan string) {
	for msg := range ch {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled.Load() && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output.
// Drops the message if the channel is full.
func DebugAsync(msg string) {
	if !debugEnabled.Load() || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// EventName returns the log name of an event type
func EventName(eventType uint8) string {
	if int(eventType) < len(eventNames) && eventNames[eventType] != "" {
		return eventNames[eventType]
	}
	return "UNKNOWN"
}

// FormatEvent renders an event as a console line: "[EVT] NAME clock=N v=N"
func FormatEvent(evt Event) string {
	return EventPrefix + EventName(evt.EventType) +
		" clock=" + utoa(evt.Clock) +
		" v=" + utoa(evt.Value)
}

// RecordEvent captures an event in the ring buffer and, when debug output
// is on, queues its console line. Never blocks.
func RecordEvent(eventType uint8, value uint32) {
	evt := Event{
		EventType: eventType,
		Clock:     GetTime(),
		Value:     value,
	}

	state := disableInterrupts()
	idx := eventRingHead
	eventRing[idx] = evt
	eventRingHead = (idx + 1) % EventRingSize
	restoreInterrupts(state)

	DebugAsync(FormatEvent(evt))
}

// EventHistory returns the recorded events, oldest first
func EventHistory() []Event {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	events := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpEventRing writes the event ring buffer (call on shutdown/error)
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVT] === Event Ring Dump ===")
	for _, evt := range EventHistory() {
		debugPrintln(FormatEvent(evt))
	}
	debugPrintln("[EVT] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}
