package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer

	queued bool
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler keeps timers in a list sorted by WakeTime and runs the due ones.
// Handlers run outside the critical section so they may schedule or delete
// timers themselves.
type Scheduler struct {
	timerList *Timer
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// ScheduleTimer adds a timer to the schedule.
// Scheduling a timer that is already queued moves it to its new WakeTime.
func (s *Scheduler) ScheduleTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if t.queued {
		s.removeTimer(t)
	}
	s.insertTimer(t)
}

// DeleteTimer removes a timer from the schedule if present
func (s *Scheduler) DeleteTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if t.queued {
		s.removeTimer(t)
	}
}

// NextWake returns the earliest pending WakeTime.
// ok is false when no timer is scheduled.
func (s *Scheduler) NextWake() (wake uint32, ok bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.timerList == nil {
		return 0, false
	}
	return s.timerList.WakeTime, true
}

// Pending returns the number of queued timers
func (s *Scheduler) Pending() int {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	n := 0
	for t := s.timerList; t != nil; t = t.Next {
		n++
	}
	return n
}

// insertTimer inserts a timer in sorted order by WakeTime.
// Timers with equal WakeTime run in insertion order.
func (s *Scheduler) insertTimer(t *Timer) {
	t.queued = true
	if s.timerList == nil || timeBefore(t.WakeTime, s.timerList.WakeTime) {
		t.Next = s.timerList
		s.timerList = t
		return
	}

	current := s.timerList
	for current.Next != nil && !timeBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// removeTimer unlinks t from the list
func (s *Scheduler) removeTimer(t *Timer) {
	if s.timerList == t {
		s.timerList = t.Next
	} else {
		for cur := s.timerList; cur != nil; cur = cur.Next {
			if cur.Next == t {
				cur.Next = t.Next
				break
			}
		}
	}
	t.Next = nil
	t.queued = false
}

// popDue removes and returns the head timer if it is due at now
func (s *Scheduler) popDue(now uint32) *Timer {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	t := s.timerList
	if t == nil || timeBefore(now, t.WakeTime) {
		return nil
	}
	s.timerList = t.Next
	t.Next = nil // Clear Next pointer to avoid circular references
	t.queued = false
	return t
}

// Dispatch runs every timer with WakeTime <= now and returns how many handlers ran
func (s *Scheduler) Dispatch(now uint32) int {
	ran := 0
	for {
		timer := s.popDue(now)
		if timer == nil {
			return ran
		}

		result := timer.Handler(timer)
		ran++

		if result == SF_RESCHEDULE {
			s.ScheduleTimer(timer)
		}
	}
}

// ProcessTimers dispatches due timers against the system time
func (s *Scheduler) ProcessTimers() int {
	return s.Dispatch(GetTime())
}
