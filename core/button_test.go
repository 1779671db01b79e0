package core

import (
	"errors"
	"testing"
)

const (
	testButtonPin = GPIOPin(5)
	testLEDPin    = GPIOPin(6)
)

// levels: true = pin high (released), false = pin low (pressed)
func runSampler(levels []bool) (edges []int, flags *EventFlags) {
	gpio := NewMockGPIODriver()
	gpio.ConfigureInputPullUp(testButtonPin)
	flags = NewEventFlags()
	b := NewButtonSampler(gpio, testButtonPin, flags)

	for i, level := range levels {
		gpio.Drive(testButtonPin, level)
		b.Tick()
		if flags.ClearBits(BTN_PRESSED_Msk)&BTN_PRESSED_Msk != 0 {
			edges = append(edges, i)
		}
	}
	return edges, flags
}

func TestButtonSamplerEdgeOnly(t *testing.T) {
	const H, L = true, false

	testCases := []struct {
		name   string
		levels []bool
		edges  []int
	}{
		{"never pressed", []bool{H, H, H, H}, nil},
		{"single sample press", []bool{H, L, H, H}, []int{1}},
		{"held press", []bool{H, L, L, L, L, H}, []int{1}},
		{"pressed at boot", []bool{L, L, H}, []int{0}},
		{"press release press", []bool{L, H, L, L, H, L}, []int{0, 2, 5}},
		{"bounce is not filtered", []bool{H, L, H, L, L}, []int{1, 3}},
	}

	for _, tc := range testCases {
		edges, _ := runSampler(tc.levels)
		if len(edges) != len(tc.edges) {
			t.Errorf("%s: expected edges at %v, got %v", tc.name, tc.edges, edges)
			continue
		}
		for i := range edges {
			if edges[i] != tc.edges[i] {
				t.Errorf("%s: expected edges at %v, got %v", tc.name, tc.edges, edges)
				break
			}
		}
	}
}

// One flag set per maximal run of pressed samples, without a consumer in between
func TestButtonSamplerOneSetPerRun(t *testing.T) {
	gpio := NewMockGPIODriver()
	flags := NewEventFlags()
	b := NewButtonSampler(gpio, testButtonPin, flags)

	levels := []bool{true, false, false, true, true, false, true, false, false, false}
	for _, level := range levels {
		gpio.Drive(testButtonPin, level)
		b.Tick()
	}

	if b.Edges() != 3 {
		t.Errorf("Expected 3 edges, got %d", b.Edges())
	}
	if flags.GetBits()&BTN_PRESSED_Msk == 0 {
		t.Error("Expected flag to be pending")
	}
	if b.State() != ButtonPressed {
		t.Errorf("Expected last state pressed, got %v", b.State())
	}
}

func TestButtonSamplerActiveLow(t *testing.T) {
	gpio := NewMockGPIODriver()
	b := NewButtonSampler(gpio, testButtonPin, NewEventFlags())

	gpio.Drive(testButtonPin, false)
	if b.Sample() != ButtonPressed {
		t.Error("Low level should read as pressed")
	}
	gpio.Drive(testButtonPin, true)
	if b.Sample() != ButtonNotPressed {
		t.Error("High level should read as not pressed")
	}
	if b.State() != ButtonNotPressed {
		t.Errorf("Initial previous state should be not pressed, got %v", b.State())
	}
}

func TestButtonSamplerStateConcurrentRead(t *testing.T) {
	gpio := NewMockGPIODriver()
	gpio.ConfigureInputPullUp(testButtonPin)
	b := NewButtonSampler(gpio, testButtonPin, NewEventFlags())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			gpio.Drive(testButtonPin, i%2 == 0)
			b.Tick()
		}
	}()

	for i := 0; i < 1000; i++ {
		if s := b.State(); s != ButtonPressed && s != ButtonNotPressed {
			t.Fatalf("Unexpected state %d", s)
		}
	}
	<-done

	if b.Edges() != 500 {
		t.Errorf("Expected 500 edges, got %d", b.Edges())
	}
}

func TestButtonSamplerFailedReadIsNotAPress(t *testing.T) {
	gpio := NewMockGPIODriver()
	gpio.ConfigureInputPullUp(testButtonPin)
	flags := NewEventFlags()
	b := NewButtonSampler(gpio, testButtonPin, flags)

	gpio.Drive(testButtonPin, false)
	gpio.Fail(testButtonPin, errors.New("read fault"))
	b.Tick()

	if flags.GetBits()&BTN_PRESSED_Msk != 0 {
		t.Error("A failed read must not raise the press flag")
	}
	if b.State() != ButtonNotPressed {
		t.Errorf("A failed read should sample as not pressed, got %v", b.State())
	}
}
