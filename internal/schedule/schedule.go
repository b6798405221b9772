// Package schedule provides cancellable timers for the page's animated parts.
//
// Every task created through a Scheduler returns a Handle. Components record
// their handles and cancel them on teardown, so no interval keeps firing after
// the component that started it is gone.
package schedule

import (
	"sync"
	"time"
)

// Handle cancels a scheduled task. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler runs functions after a delay or on a fixed interval.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// Clock schedules on the wall clock.
type Clock struct{}

// After runs fn once, d from now, on its own goroutine.
func (Clock) After(d time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(d, fn)}
}

// Every runs fn every d until cancelled.
func (Clock) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("schedule: non-positive interval")
	}
	h := &tickerHandle{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				// A tick and a cancel can be ready together.
				select {
				case <-h.stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

type timerHandle struct {
	timer *time.Timer
}

func (h *timerHandle) Cancel() {
	h.timer.Stop()
}

type tickerHandle struct {
	once sync.Once
	stop chan struct{}
}

// Cancel does not wait for the ticker goroutine, so fn may cancel its own handle.
func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}
