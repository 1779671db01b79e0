package core

import "testing"

func recordingTimer(wake uint32, name string, log *[]string) *Timer {
	return &Timer{
		WakeTime: wake,
		Handler: func(t *Timer) uint8 {
			*log = append(*log, name)
			return SF_DONE
		},
	}
}

func TestSchedulerOrder(t *testing.T) {
	sched := NewScheduler()
	var log []string

	sched.ScheduleTimer(recordingTimer(300, "c", &log))
	sched.ScheduleTimer(recordingTimer(100, "a", &log))
	sched.ScheduleTimer(recordingTimer(200, "b", &log))
	sched.ScheduleTimer(recordingTimer(200, "b2", &log))

	if ran := sched.Dispatch(250); ran != 3 {
		t.Errorf("Expected 3 timers to run, got %d", ran)
	}
	expected := []string{"a", "b", "b2"}
	for i, name := range expected {
		if i >= len(log) || log[i] != name {
			t.Fatalf("Expected run order %v, got %v", expected, log)
		}
	}

	if wake, ok := sched.NextWake(); !ok || wake != 300 {
		t.Errorf("Expected next wake 300, got %d (ok=%v)", wake, ok)
	}
}

func TestSchedulerReschedule(t *testing.T) {
	sched := NewScheduler()
	runs := 0
	timer := &Timer{
		WakeTime: 10,
		Handler: func(t *Timer) uint8 {
			runs++
			if runs == 3 {
				return SF_DONE
			}
			t.WakeTime += 10
			return SF_RESCHEDULE
		},
	}
	sched.ScheduleTimer(timer)

	for now := uint32(0); now <= 100; now += 5 {
		sched.Dispatch(now)
	}

	if runs != 3 {
		t.Errorf("Expected 3 runs, got %d", runs)
	}
	if sched.Pending() != 0 {
		t.Errorf("Expected empty schedule, got %d", sched.Pending())
	}
}

func TestSchedulerDeleteAndMove(t *testing.T) {
	sched := NewScheduler()
	var log []string
	a := recordingTimer(100, "a", &log)
	b := recordingTimer(200, "b", &log)
	sched.ScheduleTimer(a)
	sched.ScheduleTimer(b)

	sched.DeleteTimer(a)
	sched.DeleteTimer(a) // not queued any more

	// Moving a queued timer must not duplicate it
	b.WakeTime = 50
	sched.ScheduleTimer(b)
	if sched.Pending() != 1 {
		t.Fatalf("Expected 1 pending timer, got %d", sched.Pending())
	}

	sched.Dispatch(1000)
	if len(log) != 1 || log[0] != "b" {
		t.Errorf("Expected only b to run, got %v", log)
	}
}

func TestSchedulerWraparound(t *testing.T) {
	sched := NewScheduler()
	var log []string

	sched.ScheduleTimer(recordingTimer(0x00000010, "after", &log))
	sched.ScheduleTimer(recordingTimer(0xFFFFFFF0, "before", &log))

	sched.Dispatch(0xFFFFFFF8)
	if len(log) != 1 || log[0] != "before" {
		t.Fatalf("Expected only the pre-wrap timer, got %v", log)
	}

	sched.Dispatch(0x00000020)
	if len(log) != 2 || log[1] != "after" {
		t.Errorf("Expected post-wrap timer to run, got %v", log)
	}
}

func TestSchedulerEmpty(t *testing.T) {
	sched := NewScheduler()
	if _, ok := sched.NextWake(); ok {
		t.Error("Expected no next wake on empty scheduler")
	}
	if ran := sched.Dispatch(12345); ran != 0 {
		t.Errorf("Expected nothing to run, got %d", ran)
	}
}
