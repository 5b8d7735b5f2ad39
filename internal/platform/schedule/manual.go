package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler whose clock moves only through Advance. Jobs run
// synchronously on the caller's goroutine in due order.
type Manual struct {
	mu      sync.Mutex
	base    time.Time
	elapsed time.Duration
	nextID  int
	jobs    map[int]*manualJob
}

type manualJob struct {
	id       int
	interval time.Duration
	due      time.Duration
	fn       func()
}

// NewManual returns a manual scheduler whose clock starts at base.
func NewManual(base time.Time) *Manual {
	return &Manual{base: base, jobs: make(map[int]*manualJob)}
}

// Every implements Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jobs == nil {
		m.jobs = make(map[int]*manualJob)
	}
	m.nextID++
	id := m.nextID
	m.jobs[id] = &manualJob{id: id, interval: interval, due: m.elapsed + interval, fn: fn}
	return func() {
		m.mu.Lock()
		delete(m.jobs, id)
		m.mu.Unlock()
	}
}

// Now returns the manual clock reading.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.base.Add(m.elapsed)
}

// Pending returns the number of scheduled jobs.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

// Advance moves the clock forward by d, firing every job that falls due.
// Jobs scheduled or stopped by a callback take effect immediately.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.elapsed + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var next *manualJob
		for _, j := range m.jobs {
			if j.due > target || j.interval <= 0 {
				continue
			}
			if next == nil || j.due < next.due || (j.due == next.due && j.id < next.id) {
				next = j
			}
		}
		if next == nil {
			m.elapsed = target
			m.mu.Unlock()
			return
		}
		m.elapsed = next.due
		next.due += next.interval
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}
