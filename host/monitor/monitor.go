// Package monitor follows the firmware's event log on the host side.
//
// The firmware prints one line per event on its console:
//
//	[EVT] LED_TOGGLE clock=400000 v=3
//
// Other console lines (startup banners, dump headers) are passed through
// untouched. The monitor rebuilds the blink latch and LED level from the
// event stream so a host can show what the board is doing.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"blinky/core"
)

var (
	// ErrNotEvent means the line is ordinary console output
	ErrNotEvent = errors.New("not an event line")

	// ErrMalformed means the line has the event prefix but cannot be parsed
	ErrMalformed = errors.New("malformed event line")
)

var eventCodes = func() map[string]uint8 {
	codes := make(map[string]uint8)
	for code := uint8(1); ; code++ {
		name := core.EventName(code)
		if name == "UNKNOWN" {
			return codes
		}
		codes[name] = code
	}
}()

// ParseEvent parses one console line
func ParseEvent(line string) (core.Event, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, core.EventPrefix) {
		return core.Event{}, ErrNotEvent
	}

	fields := strings.Fields(strings.TrimPrefix(line, core.EventPrefix))
	if len(fields) > 0 && fields[0] == "===" {
		// Dump header/footer
		return core.Event{}, ErrNotEvent
	}
	if len(fields) != 3 {
		return core.Event{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}

	code, ok := eventCodes[fields[0]]
	if !ok {
		return core.Event{}, fmt.Errorf("%w: unknown event %q", ErrMalformed, fields[0])
	}

	clock, err := parseField(fields[1], "clock")
	if err != nil {
		return core.Event{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	value, err := parseField(fields[2], "v")
	if err != nil {
		return core.Event{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return core.Event{EventType: code, Clock: clock, Value: value}, nil
}

func parseField(field, key string) (uint32, error) {
	raw, ok := strings.CutPrefix(field, key+"=")
	if !ok {
		return 0, fmt.Errorf("expected %s=, got %q", key, field)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q: %w", key, raw, err)
	}
	return uint32(v), nil
}

// State is the board state rebuilt from events
type State struct {
	BlinkEnabled bool
	LEDOn        bool
	Edges        uint32
	Toggles      uint32
	PinErrors    uint32
	LastClock    uint32
}

// Monitor accumulates State from a stream of events
type Monitor struct {
	state State

	// OnEvent is called after each event is applied
	OnEvent func(core.Event, State)

	// OnLine is called for console lines that are not events
	OnLine func(string)
}

// New creates a monitor with the board assumed idle (disabled, LED off)
func New() *Monitor {
	return &Monitor{}
}

// State returns the current rebuilt state
func (m *Monitor) State() State {
	return m.state
}

// Apply folds one event into the state
func (m *Monitor) Apply(evt core.Event) {
	s := &m.state
	s.LastClock = evt.Clock

	switch evt.EventType {
	case core.EvtButtonEdge:
		s.Edges++
	case core.EvtBlinkEnable:
		s.BlinkEnabled = true
	case core.EvtBlinkDisable:
		s.BlinkEnabled = false
	case core.EvtLEDOff:
		s.LEDOn = false
	case core.EvtLEDToggle:
		s.LEDOn = !s.LEDOn
		s.Toggles++
	case core.EvtPinError:
		s.PinErrors++
	}

	if m.OnEvent != nil {
		m.OnEvent(evt, m.state)
	}
}

// Run reads lines from r until it fails or ends.
// Malformed event lines are reported through OnLine and skipped.
func (m *Monitor) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		evt, err := ParseEvent(line)
		if err != nil {
			if m.OnLine != nil {
				m.OnLine(line)
			}
			continue
		}
		m.Apply(evt)
	}
	return scanner.Err()
}
