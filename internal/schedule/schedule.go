// Package schedule provides cancellable delayed callbacks.
//
// Two implementations are provided. Loop runs timers on the Go runtime and
// hands every callback to a poster, which the application uses to run them on
// its single UI goroutine. Manual keeps a virtual clock that only moves when
// Advance is called, which makes debounce and expiry behavior deterministic in
// tests.
package schedule

import (
	"sync/atomic"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running.
	// It returns false if the callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler schedules callbacks to run after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Poster hands a callback to the goroutine that owns the scheduled state.
type Poster func(fn func())

// Timer states.
const (
	timerPending int32 = iota
	timerStopped
	timerFired
)

// Loop is a Scheduler whose callbacks run wherever post delivers them.
type Loop struct {
	post Poster
}

// NewLoop creates a Loop scheduler. A nil post runs callbacks on the timer goroutine.
func NewLoop(post Poster) *Loop {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Loop{post: post}
}

// AfterFunc schedules fn to be posted after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.post(func() {
			// Stop may have been called between expiry and delivery.
			if lt.state.CompareAndSwap(timerPending, timerFired) {
				fn()
			}
		})
	})
	return lt
}

type loopTimer struct {
	t     *time.Timer
	state atomic.Int32
}

func (lt *loopTimer) Stop() bool {
	if !lt.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	lt.t.Stop()
	return true
}
