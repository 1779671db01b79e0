// Composition of the button sampler and the LED driver around one event flag group
package core

import "errors"

// DriverMode selects how the LED driver is scheduled
type DriverMode uint8

const (
	ModeTask  DriverMode = iota // LED driver is a task with its own loop
	ModeTimer                   // LED driver is an auto-reload timer callback
)

func (m DriverMode) String() string {
	if m == ModeTimer {
		return "timer"
	}
	return "task"
}

// Config describes the board wiring and timing
type Config struct {
	ButtonPin    GPIOPin
	LEDPin       GPIOPin
	LEDActiveLow bool

	SamplePeriod uint32 // Button sampling period in ticks
	TogglePeriod uint32 // LED driver period in ticks

	Mode DriverMode
}

// DefaultConfig returns 20ms sampling, a 200ms LED tick and the task driver
func DefaultConfig() Config {
	return Config{
		SamplePeriod: TimerFromMS(DefaultSamplePeriodMS),
		TogglePeriod: TimerFromMS(DefaultTogglePeriodMS),
		Mode:         ModeTask,
	}
}

var (
	ErrInvalidPeriod = errors.New("period must be non-zero")
	ErrPinConflict   = errors.New("button and LED must use different pins")
)

// PinError reports a failed pin configuration during setup
type PinError struct {
	Op  string
	Pin GPIOPin
	Err error
}

func (e *PinError) Error() string {
	return e.Op + " pin " + utoa(uint32(e.Pin)) + ": " + e.Err.Error()
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// App owns the event flags and the two periodic activities
type App struct {
	Config Config

	Flags   *EventFlags
	Sampler *ButtonSampler
	Toggler *LEDToggler
	Driver  LEDDriver

	sampleTask *TaskRunner
}

// NewApp configures the pins, writes the LED off once and builds both activities
func NewApp(cfg Config, gpio GPIODriver) (*App, error) {
	if cfg.SamplePeriod == 0 || cfg.TogglePeriod == 0 {
		return nil, ErrInvalidPeriod
	}
	if cfg.ButtonPin == cfg.LEDPin {
		return nil, ErrPinConflict
	}

	if err := gpio.ConfigureInputPullUp(cfg.ButtonPin); err != nil {
		return nil, &PinError{Op: "configure button", Pin: cfg.ButtonPin, Err: err}
	}
	if err := gpio.ConfigureOutput(cfg.LEDPin); err != nil {
		return nil, &PinError{Op: "configure led", Pin: cfg.LEDPin, Err: err}
	}

	flags := NewEventFlags()
	app := &App{
		Config:  cfg,
		Flags:   flags,
		Sampler: NewButtonSampler(gpio, cfg.ButtonPin, flags),
		Toggler: NewLEDToggler(gpio, cfg.LEDPin, flags, cfg.LEDActiveLow),
	}

	// Start from a known off level
	if err := gpio.SetPin(cfg.LEDPin, cfg.LEDActiveLow); err != nil {
		return nil, &PinError{Op: "initialize led", Pin: cfg.LEDPin, Err: err}
	}

	app.sampleTask = NewTaskRunner("button_read_task", app.Sampler, cfg.SamplePeriod)
	switch cfg.Mode {
	case ModeTimer:
		app.Driver = NewLEDToggleTimer(app.Toggler, cfg.TogglePeriod)
	default:
		app.Driver = NewLEDToggleTask(app.Toggler, cfg.TogglePeriod)
	}

	return app, nil
}

// SampleTask returns the button sampler task runner
func (a *App) SampleTask() *TaskRunner {
	return a.sampleTask
}

// Start launches the button task and the LED driver.
// In timer mode the LED timer is queued on sched, which the caller must
// keep dispatching. Neither activity ever stops.
func (a *App) Start(sched *Scheduler, clock Clock) {
	DebugPrintln("blinky: starting, led driver mode=" + a.Config.Mode.String())

	go a.sampleTask.Run(clock)

	switch d := a.Driver.(type) {
	case *LEDToggleTimer:
		d.Start(sched, clock.Now())
	case *LEDToggleTask:
		go d.Run(clock)
	}
}
