// Package schedule provides cancellable delayed tasks and a trailing debouncer.
package schedule

import (
	"time"
)

// Timer is a handle to a scheduled task.
type Timer interface {
	// Stop prevents the task from running. It reports false when the task
	// already ran or was stopped before.
	Stop() bool
}

// Scheduler runs a function once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// System returns a Scheduler backed by time.AfterFunc.
func System() Scheduler { //nolint:ireturn
	return systemScheduler{}
}

// OrSystem returns s, or the system scheduler when s is nil.
func OrSystem(s Scheduler) Scheduler { //nolint:ireturn
	if s == nil {
		return System()
	}
	return s
}
