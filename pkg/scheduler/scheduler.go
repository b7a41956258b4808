/*
Package scheduler provides a single-threaded, cooperative timer queue.

All termfolio state machines express delays as tasks on a Scheduler instead of goroutines or
time.AfterFunc. The host owns the clock: the full-screen UI calls Advance(time.Now()) once per
frame, tests call it with synthetic instants. Callbacks therefore always run on the host's
goroutine, one at a time, in due-time order.
*/
package scheduler

import (
	"container/heap"
	"time"
)

// minInterval bounds repeating tasks so Advance always terminates.
const minInterval = time.Millisecond

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMaxLag bounds how far a repeating task may fall behind the clock. When an Advance
// finds a task more than d late, the missed periods are dropped and the task runs once
// for the whole gap. Zero (the default) replays every period.
func WithMaxLag(d time.Duration) Option {
	return func(s *Scheduler) {
		s.maxLag = d
	}
}

// Scheduler is a virtual-time timer queue. It is not safe for concurrent use.
type Scheduler struct {
	now    time.Time
	seq    uint64
	queue  taskQueue
	maxLag time.Duration
}

// New creates a scheduler whose clock starts at start.
func New(start time.Time, opts ...Option) *Scheduler {
	s := &Scheduler{now: start}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the scheduler's current instant.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run once, d after the current instant.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	return s.push(&Task{due: s.now.Add(d), fn: fn})
}

// Every schedules fn to run repeatedly with period d, first run d from now.
func (s *Scheduler) Every(d time.Duration, fn func()) *Task {
	if d < minInterval {
		d = minInterval
	}
	return s.push(&Task{due: s.now.Add(d), every: d, fn: fn})
}

func (s *Scheduler) push(t *Task) *Task {
	s.seq++
	t.seq = s.seq
	t.sched = s
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock to `to`, running every task that becomes due on the way.
// Tasks scheduled by callbacks run in the same call when their due time is not after `to`.
// It returns the number of callbacks executed. The clock never moves backwards.
func (s *Scheduler) Advance(to time.Time) int {
	ran := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.cancelled {
			heap.Pop(&s.queue)
			continue
		}
		if next.due.After(to) {
			break
		}
		heap.Pop(&s.queue)
		if next.due.After(s.now) {
			s.now = next.due
		}
		if next.every > 0 {
			next.due = next.due.Add(next.every)
			if lag := to.Sub(next.due); s.maxLag > 0 && lag > s.maxLag {
				// Skip to the last period not after `to`.
				next.due = next.due.Add(lag / next.every * next.every)
			}
			s.seq++
			next.seq = s.seq
			heap.Push(&s.queue, next)
		} else {
			next.done = true
		}
		next.fn()
		ran++
	}
	if to.After(s.now) {
		s.now = to
	}
	return ran
}

// Pending returns the number of live (not cancelled, not finished) tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// NextDue returns the due time of the earliest live task.
func (s *Scheduler) NextDue() (time.Time, bool) {
	for s.queue.Len() > 0 && s.queue[0].cancelled {
		heap.Pop(&s.queue)
	}
	if s.queue.Len() == 0 {
		return time.Time{}, false
	}
	return s.queue[0].due, true
}

// Task is a scheduled callback.
type Task struct {
	sched     *Scheduler
	due       time.Time
	every     time.Duration
	fn        func()
	seq       uint64
	index     int
	cancelled bool
	done      bool
}

// Cancel prevents any future run of the task. It is idempotent and safe on a nil Task.
func (t *Task) Cancel() {
	if t == nil || t.cancelled {
		return
	}
	t.cancelled = true
	if t.sched != nil && t.index >= 0 && t.index < t.sched.queue.Len() && t.sched.queue[t.index] == t {
		heap.Remove(&t.sched.queue, t.index)
	}
}

// Active reports whether the task may still run.
func (t *Task) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// taskQueue orders tasks by due time, then by scheduling order.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
