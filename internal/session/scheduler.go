package session

import (
	"sort"
	"time"
)

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// scheduler runs deferred callbacks on the simulation clock.
// Callbacks scheduled while a run is in progress wait for the next run,
// even with a zero delay.
type scheduler struct {
	now    time.Duration
	seq    uint64
	queue  []timer
	closed bool
}

func newScheduler(now time.Duration) *scheduler {
	return &scheduler{now: now}
}

// After schedules fn to run d after the current time.
func (s *scheduler) After(d time.Duration, fn func()) {
	if s.closed {
		return
	}
	s.seq++
	s.queue = append(s.queue, timer{at: s.now + d, seq: s.seq, fn: fn})
}

// run fires every callback due at now in deadline order, FIFO for equal
// deadlines.
func (s *scheduler) run(now time.Duration) {
	s.now = now
	limit := s.seq

	var due, rest []timer
	for _, t := range s.queue {
		if t.at <= now && t.seq <= limit {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	if len(due) == 0 {
		return
	}
	s.queue = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		if s.closed {
			return
		}
		t.fn()
	}
}

// pending returns the number of queued callbacks.
func (s *scheduler) pending() int {
	return len(s.queue)
}

// close drops every queued callback and refuses new ones.
func (s *scheduler) close() {
	s.closed = true
	s.queue = nil
}
