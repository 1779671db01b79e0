// Periodic activities: task loops with absolute deadlines and auto-reload timers
package core

import "time"

// PeriodicTask is one unit of periodic work. Tick is called once per period
// by either a TaskRunner or a PeriodicTimer.
type PeriodicTask interface {
	Tick()
}

// TaskFunc adapts a plain function to PeriodicTask
type TaskFunc func()

// Tick calls f
func (f TaskFunc) Tick() { f() }

// Clock is the time source used by task loops
type Clock interface {
	// Now returns the current time in timer ticks
	Now() uint32

	// SleepUntil blocks until Now() has reached deadline
	SleepUntil(deadline uint32)
}

// SystemClock reads the core tick counter and sleeps with the Go runtime
type SystemClock struct{}

// Now returns GetTime()
func (SystemClock) Now() uint32 {
	return GetTime()
}

// SleepUntil sleeps until the tick counter reaches deadline.
// The counter is advanced by the target's main loop, so re-check after waking.
func (SystemClock) SleepUntil(deadline uint32) {
	for {
		now := GetTime()
		if !timeBefore(now, deadline) {
			return
		}
		time.Sleep(time.Duration(deadline-now) * (time.Second / TimerFreq))
	}
}

// DelayUntil advances *lastWake by period and blocks until that absolute time.
// Time spent in the task body does not shift the next wake time. If the
// deadline already passed it returns at once and the phase is kept.
func DelayUntil(clock Clock, lastWake *uint32, period uint32) {
	*lastWake += period
	if timeBefore(clock.Now(), *lastWake) {
		clock.SleepUntil(*lastWake)
	}
}

// TaskRunner runs a PeriodicTask as an endless loop of DelayUntil + Tick
type TaskRunner struct {
	Name   string
	Task   PeriodicTask
	Period uint32 // in timer ticks

	lastWake uint32
	started  bool
	ticks    uint32
}

// NewTaskRunner creates a runner for task with the given period in ticks
func NewTaskRunner(name string, task PeriodicTask, period uint32) *TaskRunner {
	return &TaskRunner{
		Name:   name,
		Task:   task,
		Period: period,
	}
}

// Step waits for the next period and runs one tick.
// The first call anchors the schedule at clock.Now().
func (r *TaskRunner) Step(clock Clock) {
	if !r.started {
		r.lastWake = clock.Now()
		r.started = true
	}
	DelayUntil(clock, &r.lastWake, r.Period)
	r.Task.Tick()
	r.ticks++
}

// Run loops forever
func (r *TaskRunner) Run(clock Clock) {
	DebugPrintln("task " + r.Name + " started, period=" + utoa(r.Period))
	for {
		r.Step(clock)
	}
}

// Ticks returns how many times the task body ran
func (r *TaskRunner) Ticks() uint32 {
	return r.ticks
}

// LastWake returns the absolute time of the most recent wake
func (r *TaskRunner) LastWake() uint32 {
	return r.lastWake
}

// PeriodicTimer is an auto-reload software timer that calls Task on expiry
type PeriodicTimer struct {
	Name   string
	Task   PeriodicTask
	Period uint32 // in timer ticks

	timer   Timer
	running bool
	expired uint32
}

// NewPeriodicTimer creates a stopped auto-reload timer
func NewPeriodicTimer(name string, task PeriodicTask, period uint32) *PeriodicTimer {
	pt := &PeriodicTimer{
		Name:   name,
		Task:   task,
		Period: period,
	}
	pt.timer.Handler = pt.expire
	return pt
}

// Start schedules the first expiry one period after now
func (pt *PeriodicTimer) Start(sched *Scheduler, now uint32) {
	pt.running = true
	pt.timer.WakeTime = now + pt.Period
	sched.ScheduleTimer(&pt.timer)
}

// Stop removes the timer from the scheduler
func (pt *PeriodicTimer) Stop(sched *Scheduler) {
	pt.running = false
	sched.DeleteTimer(&pt.timer)
}

// Running reports whether the timer is active
func (pt *PeriodicTimer) Running() bool {
	return pt.running
}

// Expired returns the number of expiries so far
func (pt *PeriodicTimer) Expired() uint32 {
	return pt.expired
}

// expire is the timer handler. The reload is relative to the previous
// deadline, not to the dispatch time, so the period does not drift.
func (pt *PeriodicTimer) expire(t *Timer) uint8 {
	if !pt.running {
		return SF_DONE
	}
	pt.expired++
	pt.Task.Tick()
	if !pt.running {
		// Stopped from inside the callback
		return SF_DONE
	}
	t.WakeTime += pt.Period
	return SF_RESCHEDULE
}
