//go:build rp2040

package pio

// PIO LED backend using tinygo-org/pio package.
// The CPU only pushes levels; the state machine owns the pin.

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// ErrNoStateMachine is returned when all eight state machines are taken
var ErrNoStateMachine = errors.New("pio: no free state machine")

// buildLEDProgram creates the two-instruction level program:
// every word pulled from the TX FIFO has its low bit written to the pin.
func buildLEDProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 1).Encode(), // 1: out pins, 1
		// .wrap
	}
}

// Let the PIO block place the program at any free address
const ledPIOOrigin = -1

// PIOLED drives one LED pin from a PIO state machine
type PIOLED struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pin    machine.Pin
	level  bool
	pioNum uint8
	smNum  uint8
}

// NewPIOLED claims a free state machine and loads the level program on pin
func NewPIOLED(pin machine.Pin) (*PIOLED, error) {
	pioNum, smNum, ok := allocatePIO()
	if !ok {
		return nil, ErrNoStateMachine
	}

	pioHW := rp2pio.PIO0
	if pioNum == 1 {
		pioHW = rp2pio.PIO1
	}

	l := &PIOLED{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		pin:    pin,
		pioNum: pioNum,
		smNum:  smNum,
	}
	if err := l.init(); err != nil {
		releasePIO(pioNum, smNum)
		return nil, err
	}
	return l, nil
}

func (l *PIOLED) init() error {
	l.sm.TryClaim()

	program := buildLEDProgram()
	offset, err := l.pio.AddProgram(program, ledPIOOrigin)
	if err != nil {
		return err
	}

	l.pin.Configure(machine.PinConfig{Mode: l.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(l.pin, 1)
	// Shift right so bit 0 goes out first, no autopull
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	l.sm.Init(offset, cfg)
	l.sm.SetPindirsConsecutive(l.pin, 1, true)
	l.sm.SetPinsConsecutive(l.pin, 1, false)
	l.sm.SetEnabled(true)
	return nil
}

// Set pushes a level to the state machine
func (l *PIOLED) Set(level bool) error {
	word := uint32(0)
	if level {
		word = 1
	}
	for l.sm.IsTxFIFOFull() {
		// Busy wait - one word drains in two PIO cycles
	}
	l.sm.TxPut(word)
	l.level = level
	return nil
}

// Get returns the last pushed level
func (l *PIOLED) Get() bool {
	return l.level
}
