package core

import (
	"runtime"
	"sync"
	"testing"
)

func TestEventFlagsSetClear(t *testing.T) {
	f := NewEventFlags()

	if bits := f.ClearBits(BTN_PRESSED_Msk); bits != 0 {
		t.Errorf("Expected clear of empty group to return 0, got %#x", bits)
	}

	if bits := f.SetBits(BTN_PRESSED_Msk); bits != BTN_PRESSED_Msk {
		t.Errorf("Expected SetBits to return %#x, got %#x", BTN_PRESSED_Msk, bits)
	}

	// Idempotent
	f.SetBits(BTN_PRESSED_Msk)
	if f.GetBits() != BTN_PRESSED_Msk {
		t.Errorf("Expected bits %#x, got %#x", BTN_PRESSED_Msk, f.GetBits())
	}

	if bits := f.ClearBits(BTN_PRESSED_Msk); bits&BTN_PRESSED_Msk == 0 {
		t.Error("ClearBits did not report the pending bit")
	}
	if bits := f.ClearBits(BTN_PRESSED_Msk); bits&BTN_PRESSED_Msk != 0 {
		t.Error("Second ClearBits reported the bit again")
	}
}

func TestEventFlagsClearLeavesOtherBits(t *testing.T) {
	f := NewEventFlags()
	f.SetBits(BTN_PRESSED_Msk | 0x4)

	if bits := f.ClearBits(BTN_PRESSED_Msk); bits != BTN_PRESSED_Msk|0x4 {
		t.Errorf("Expected prior value %#x, got %#x", BTN_PRESSED_Msk|0x4, bits)
	}
	if f.GetBits() != 0x4 {
		t.Errorf("Expected unrelated bit to survive, got %#x", f.GetBits())
	}
}

// A single producer sets the bit only after seeing it consumed, so every
// set is a distinct event. The consumer must observe each exactly once.
func TestEventFlagsNoLostOrDuplicateSignal(t *testing.T) {
	const rounds = 20000
	f := NewEventFlags()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			for f.GetBits()&BTN_PRESSED_Msk != 0 {
				runtime.Gosched()
			}
			f.SetBits(BTN_PRESSED_Msk)
		}
	}()

	seen := 0
	for seen < rounds {
		if f.ClearBits(BTN_PRESSED_Msk)&BTN_PRESSED_Msk != 0 {
			seen++
		} else {
			runtime.Gosched()
		}
	}
	wg.Wait()

	if seen != rounds {
		t.Errorf("Expected %d consumed signals, got %d", rounds, seen)
	}
	if f.GetBits() != 0 {
		t.Errorf("Expected empty group at end, got %#x", f.GetBits())
	}
}

func TestEventFlagsConcurrentSettersCoalesce(t *testing.T) {
	f := NewEventFlags()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.SetBits(BTN_PRESSED_Msk)
			}
		}()
	}
	wg.Wait()

	if f.ClearBits(BTN_PRESSED_Msk)&BTN_PRESSED_Msk == 0 {
		t.Error("Expected pending bit after concurrent sets")
	}
	if f.ClearBits(BTN_PRESSED_Msk)&BTN_PRESSED_Msk != 0 {
		t.Error("Concurrent sets must merge into one signal")
	}
}
