package app

import (
	"time"

	"github.com/example/warden/internal/ports/secondary"
)

// systemScheduler implements secondary.Scheduler with real timers.
type systemScheduler struct{}

// NewSystemScheduler returns the production scheduler backed by
// time.AfterFunc.
func NewSystemScheduler() secondary.Scheduler {
	return systemScheduler{}
}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) secondary.Timer {
	return time.AfterFunc(d, fn)
}
