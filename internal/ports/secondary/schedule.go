package secondary

import "time"

// Timer is a cancellable one-shot timer handle.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// Scheduler schedules one-shot callbacks. The production implementation is
// time.AfterFunc; tests substitute a manual scheduler to control firing.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
