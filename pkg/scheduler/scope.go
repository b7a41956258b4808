package scheduler

import "time"

// Scope groups the tasks of one component so they can be torn down together.
// After Dispose, every task created through the scope is cancelled and new ones
// are returned already cancelled, so no callback can run against a defunct owner.
type Scope struct {
	sched    *Scheduler
	tasks    []*Task
	disposed bool
}

// Scope creates a new task group on s.
func (s *Scheduler) Scope() *Scope {
	return &Scope{sched: s}
}

// After schedules a one-shot task within the scope.
func (sc *Scope) After(d time.Duration, fn func()) *Task {
	if sc.disposed {
		return &Task{cancelled: true, index: -1}
	}
	return sc.track(sc.sched.After(d, fn))
}

// Every schedules a repeating task within the scope.
func (sc *Scope) Every(d time.Duration, fn func()) *Task {
	if sc.disposed {
		return &Task{cancelled: true, index: -1}
	}
	return sc.track(sc.sched.Every(d, fn))
}

func (sc *Scope) track(t *Task) *Task {
	// Drop finished tasks so long-lived scopes do not grow without bound.
	live := sc.tasks[:0]
	for _, old := range sc.tasks {
		if old.Active() {
			live = append(live, old)
		}
	}
	sc.tasks = append(live, t)
	return t
}

// Now returns the owning scheduler's current instant.
func (sc *Scope) Now() time.Time {
	return sc.sched.Now()
}

// Dispose cancels every task of the scope. It is idempotent.
func (sc *Scope) Dispose() {
	if sc.disposed {
		return
	}
	sc.disposed = true
	for _, t := range sc.tasks {
		t.Cancel()
	}
	sc.tasks = nil
}

// Disposed reports whether Dispose has been called.
func (sc *Scope) Disposed() bool {
	return sc.disposed
}
