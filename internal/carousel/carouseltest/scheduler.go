// Package carouseltest provides a deterministic scheduler for tests that drive
// carousel timers.
package carouseltest

import (
	"sync"
	"time"

	"valu/internal/carousel"
)

// ManualScheduler fires tasks only when Advance moves its clock.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*task
}

var _ carousel.Scheduler = (*ManualScheduler)(nil)

type task struct {
	s        *ManualScheduler
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements carousel.Scheduler.
func (s *ManualScheduler) Every(interval time.Duration, fn func()) carousel.Stopper {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	t := &task{s: s, interval: interval, next: s.now + interval, fn: fn}
	s.tasks = append(live, t)
	return t
}

// Advance moves the clock forward by d, firing due tasks in time order, and
// returns how many callbacks ran. Callbacks run without the scheduler lock
// held, so they may start or stop tasks.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		s.mu.Lock()
		var due *task
		for _, t := range s.tasks {
			if t.stopped || t.next > target {
				continue
			}
			if due == nil || t.next < due.next {
				due = t
			}
		}
		if due == nil {
			s.now = target
			s.mu.Unlock()
			return fired
		}
		s.now = due.next
		due.next += due.interval
		fn := due.fn
		s.mu.Unlock()

		fn()
		fired++
	}
}

// Active returns the number of tasks that have not been stopped.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Elapsed returns how far the clock has advanced.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (t *task) Stop() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.stopped = true
}
