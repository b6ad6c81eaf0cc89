// internal/schedule/schedule.go
//
// Delayed task scheduling for presenters.
//
// Two implementations:
//   - Clock:  wall-clock timers (time.AfterFunc); tasks run on timer goroutines.
//   - Manual: virtual time for tests; tasks run synchronously inside Advance.
//
// A cancelled task never runs. Cancel is safe to call more than once.

package schedule

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled task. It reports whether the task was stopped
// before it ran.
type Cancel func() bool

// Scheduler runs task once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, task func()) Cancel
}

// Clock schedules on real time.
type Clock struct{}

// Schedule implements Scheduler.
func (Clock) Schedule(delay time.Duration, task func()) Cancel {
	t := time.AfterFunc(delay, task)
	return t.Stop
}

// Manual is a virtual clock. The zero value starts at time zero.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at   time.Duration
	seq  int // FIFO among equal deadlines
	run  func()
	done bool
}

// NewManual returns a virtual clock at time zero.
func NewManual() *Manual { return &Manual{} }

// Schedule implements Scheduler.
func (m *Manual) Schedule(delay time.Duration, task func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	m.seq++
	mt := &manualTask{at: m.now + delay, seq: m.seq, run: task}
	m.tasks = append(m.tasks, mt)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if mt.done {
			return false
		}
		mt.done = true
		m.remove(mt)
		return true
	}
}

// Advance moves virtual time forward by d, running every task that falls due
// in deadline order. Tasks scheduled by a running task are honoured if they
// fall due within the same window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		next.done = true
		m.remove(next)
		m.now = next.at
		m.mu.Unlock()

		next.run()
	}
}

// Now reports elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending reports how many tasks are waiting.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) nextDue(limit time.Duration) *manualTask {
	sort.Slice(m.tasks, func(i, j int) bool {
		if m.tasks[i].at != m.tasks[j].at {
			return m.tasks[i].at < m.tasks[j].at
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	if len(m.tasks) == 0 || m.tasks[0].at > limit {
		return nil
	}
	return m.tasks[0]
}

func (m *Manual) remove(t *manualTask) {
	for i, x := range m.tasks {
		if x == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}
