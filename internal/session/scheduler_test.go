package session

import (
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	s := newScheduler(0)
	var got []int
	s.After(20*time.Millisecond, func() { got = append(got, 3) })
	s.After(10*time.Millisecond, func() { got = append(got, 1) })
	s.After(10*time.Millisecond, func() { got = append(got, 2) })

	s.run(5 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("run(5ms) fired %v, expected nothing", got)
	}

	s.run(30 * time.Millisecond)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("fired %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fired[%d] = %d, expected %d", i, got[i], want[i])
		}
	}
	if s.pending() != 0 {
		t.Errorf("pending() = %d, expected 0", s.pending())
	}
}

func TestSchedulerDefersNestedTimers(t *testing.T) {
	s := newScheduler(0)
	fired := 0
	s.After(0, func() {
		s.After(0, func() { fired++ })
	})

	s.run(0)
	if fired != 0 {
		t.Error("a timer scheduled during a run should wait for the next run")
	}
	if s.pending() != 1 {
		t.Errorf("pending() = %d, expected 1", s.pending())
	}

	s.run(time.Millisecond)
	if fired != 1 {
		t.Errorf("fired = %d, expected 1", fired)
	}
}

func TestSchedulerDelayIsRelativeToLastRun(t *testing.T) {
	s := newScheduler(0)
	s.run(100 * time.Millisecond)

	fired := false
	s.After(50*time.Millisecond, func() { fired = true })
	s.run(149 * time.Millisecond)
	if fired {
		t.Error("timer fired early")
	}
	s.run(150 * time.Millisecond)
	if !fired {
		t.Error("timer should fire at its deadline")
	}
}

func TestSchedulerClose(t *testing.T) {
	s := newScheduler(0)
	fired := 0
	s.After(0, func() {
		fired++
		s.close()
	})
	s.After(0, func() { fired++ })

	s.run(time.Millisecond)
	if fired != 1 {
		t.Errorf("fired = %d, expected close to stop the run", fired)
	}

	s.After(0, func() { fired++ })
	s.run(time.Second)
	if fired != 1 || s.pending() != 0 {
		t.Error("a closed scheduler should refuse new timers")
	}
}
