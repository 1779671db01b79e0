package core

import (
	"errors"
	"testing"
)

func testAppConfig(mode DriverMode) Config {
	cfg := DefaultConfig()
	cfg.ButtonPin = testButtonPin
	cfg.LEDPin = testLEDPin
	cfg.SamplePeriod = 20
	cfg.TogglePeriod = 200
	cfg.Mode = mode
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SamplePeriod != TimerFromMS(20) {
		t.Errorf("Expected 20ms sample period, got %d ticks", cfg.SamplePeriod)
	}
	if cfg.TogglePeriod != TimerFromMS(200) {
		t.Errorf("Expected 200ms toggle period, got %d ticks", cfg.TogglePeriod)
	}
	if cfg.Mode != ModeTask {
		t.Errorf("Expected task mode by default, got %v", cfg.Mode)
	}
}

func TestNewAppConfiguresPins(t *testing.T) {
	gpio := NewMockGPIODriver()
	cfg := testAppConfig(ModeTask)
	cfg.LEDActiveLow = true

	app, err := NewApp(cfg, gpio)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	if gpio.modes[testButtonPin] != "input_pullup" {
		t.Errorf("Expected button pin as input_pullup, got %q", gpio.modes[testButtonPin])
	}
	if gpio.modes[testLEDPin] != "output" {
		t.Errorf("Expected LED pin as output, got %q", gpio.modes[testLEDPin])
	}
	ops := gpio.Ops()
	if len(ops) != 1 || ops[0].Pin != testLEDPin || ops[0].Level != true {
		t.Errorf("Expected one startup off write (high for active-low), got %+v", ops)
	}

	if _, ok := app.Driver.(*LEDToggleTask); !ok {
		t.Errorf("Expected task driver, got %T", app.Driver)
	}
	if app.Driver.Toggler() != app.Toggler {
		t.Error("Driver must wrap the app toggler")
	}
	if app.SampleTask().Period != 20 {
		t.Errorf("Expected sample task period 20, got %d", app.SampleTask().Period)
	}
}

func TestNewAppTimerMode(t *testing.T) {
	app, err := NewApp(testAppConfig(ModeTimer), NewMockGPIODriver())
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if _, ok := app.Driver.(*LEDToggleTimer); !ok {
		t.Errorf("Expected timer driver, got %T", app.Driver)
	}
}

func TestNewAppErrors(t *testing.T) {
	cfg := testAppConfig(ModeTask)
	cfg.TogglePeriod = 0
	if _, err := NewApp(cfg, NewMockGPIODriver()); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}

	cfg = testAppConfig(ModeTask)
	cfg.LEDPin = cfg.ButtonPin
	if _, err := NewApp(cfg, NewMockGPIODriver()); !errors.Is(err, ErrPinConflict) {
		t.Errorf("Expected ErrPinConflict, got %v", err)
	}

	gpio := NewMockGPIODriver()
	boom := errors.New("pin reserved")
	gpio.Fail(testLEDPin, boom)
	_, err := NewApp(testAppConfig(ModeTask), gpio)
	var pinErr *PinError
	if !errors.As(err, &pinErr) {
		t.Fatalf("Expected *PinError, got %v", err)
	}
	if pinErr.Pin != testLEDPin || !errors.Is(err, boom) {
		t.Errorf("Unexpected pin error: %v", err)
	}
	if pinErr.Error() != "configure led pin 6: pin reserved" {
		t.Errorf("Unexpected message %q", pinErr.Error())
	}
}

// appRig runs an App on virtual time: both activities expire as timers on
// one scheduler, and the button level follows a script.
type appRig struct {
	app   *App
	gpio  *MockGPIODriver
	sched *Scheduler
	now   uint32
}

func newAppRig(t *testing.T, mode DriverMode) *appRig {
	t.Helper()
	gpio := NewMockGPIODriver()
	app, err := NewApp(testAppConfig(mode), gpio)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	gpio.Ops()

	rig := &appRig{app: app, gpio: gpio, sched: NewScheduler()}
	NewPeriodicTimer("sampler", app.Sampler, app.Config.SamplePeriod).Start(rig.sched, 0)
	switch d := app.Driver.(type) {
	case *LEDToggleTimer:
		d.Start(rig.sched, 0)
	default:
		NewPeriodicTimer("led", d, app.Config.TogglePeriod).Start(rig.sched, 0)
	}
	return rig
}

// run advances time to end, holding the button pressed during the given windows
func (r *appRig) run(end uint32, pressed ...[2]uint32) {
	for r.now < end {
		r.now++
		level := true
		for _, w := range pressed {
			if r.now >= w[0] && r.now < w[1] {
				level = false
			}
		}
		r.gpio.Drive(testButtonPin, level)
		r.sched.Dispatch(r.now)
	}
}

func TestAppEndToEnd(t *testing.T) {
	for _, mode := range []DriverMode{ModeTask, ModeTimer} {
		rig := newAppRig(t, mode)

		// Short press sampled once at t=120, driver tick at t=200 enables
		rig.run(210, [2]uint32{110, 125})
		if !rig.app.Toggler.Enabled() {
			t.Fatalf("%v: expected blinking enabled after press", mode)
		}
		if rig.app.Sampler.Edges() != 1 {
			t.Errorf("%v: expected 1 edge, got %d", mode, rig.app.Sampler.Edges())
		}

		// Blinks on every driver tick: 3 more ticks at 400, 600, 800
		rig.run(810)
		if s := rig.app.Toggler.Stats(); s.Toggles != 4 {
			t.Errorf("%v: expected 4 toggles, got %d", mode, s.Toggles)
		}

		// Held press across two driver ticks still disables only once
		rig.run(1500, [2]uint32{850, 1300})
		if rig.app.Toggler.Enabled() {
			t.Errorf("%v: expected disabled after second press", mode)
		}
		if rig.gpio.ReadPin(testLEDPin) {
			t.Errorf("%v: expected LED off after disable", mode)
		}
	}
}

// Scenario B on virtual time
func TestAppTwoPressesInOnePeriod(t *testing.T) {
	for _, mode := range []DriverMode{ModeTask, ModeTimer} {
		rig := newAppRig(t, mode)

		rig.run(210, [2]uint32{30, 50}, [2]uint32{90, 130})
		if rig.app.Sampler.Edges() != 2 {
			t.Fatalf("%v: expected 2 edges, got %d", mode, rig.app.Sampler.Edges())
		}
		if !rig.app.Toggler.Enabled() {
			t.Errorf("%v: two merged presses must give exactly one enable", mode)
		}
	}
}
