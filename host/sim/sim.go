package sim

import (
	"sync"
	"time"

	"blinky/core"
)

// WallClock is a core.Clock counting microsecond ticks since it was created
type WallClock struct {
	start time.Time
}

// NewWallClock starts a clock at tick 0
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns elapsed ticks, wrapping like the hardware counter
func (c *WallClock) Now() uint32 {
	return uint32(time.Since(c.start) / (time.Second / core.TimerFreq))
}

// SleepUntil sleeps until the clock reaches deadline
func (c *WallClock) SleepUntil(deadline uint32) {
	for {
		remaining := int32(deadline - c.Now())
		if remaining <= 0 {
			return
		}
		time.Sleep(time.Duration(remaining) * (time.Second / core.TimerFreq))
	}
}

// DispatchInterval is how often the simulator runs the timer service
const DispatchInterval = time.Millisecond

// Simulator wires a core.App to simulated pins and real time
type Simulator struct {
	App   *core.App
	GPIO  *GPIO
	Clock *WallClock

	sched   *core.Scheduler
	stop    chan struct{}
	stopped sync.WaitGroup
}

// New builds the app on a fresh pin bank. Output callbacks must be set on
// the returned GPIO before Start if the startup write is of interest.
func New(cfg core.Config) (*Simulator, error) {
	gpio := NewGPIO()
	app, err := core.NewApp(cfg, gpio)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		App:   app,
		GPIO:  gpio,
		Clock: NewWallClock(),
		sched: core.NewScheduler(),
		stop:  make(chan struct{}),
	}, nil
}

// Start launches the app and the timer service loop.
// The app's own activities run until the process exits.
func (s *Simulator) Start() {
	core.SetTime(s.Clock.Now())
	core.TimerInit()
	s.App.Start(s.sched, s.Clock)

	s.stopped.Add(1)
	go func() {
		defer s.stopped.Done()
		ticker := time.NewTicker(DispatchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				core.SetTime(s.Clock.Now())
				s.sched.ProcessTimers()
			}
		}
	}()
}

// Stop halts the timer service loop
func (s *Simulator) Stop() {
	close(s.stop)
	s.stopped.Wait()
}

// Press holds the button down (active-low: pin driven low)
func (s *Simulator) Press() {
	s.GPIO.Drive(s.App.Config.ButtonPin, false)
}

// Release lets the button go back to its pull-up level
func (s *Simulator) Release() {
	s.GPIO.Release(s.App.Config.ButtonPin)
}

// Tap presses the button for d, then releases it without blocking
func (s *Simulator) Tap(d time.Duration) {
	s.Press()
	time.AfterFunc(d, s.Release)
}

// UptimeMS returns the milliseconds since Start as seen by the core
func (s *Simulator) UptimeMS() uint32 {
	return core.TimerToMS(core.GetUptime())
}

// LEDOn reports whether the LED is lit, taking polarity into account
func (s *Simulator) LEDOn() bool {
	return s.GPIO.ReadPin(s.App.Config.LEDPin) != s.App.Config.LEDActiveLow
}
