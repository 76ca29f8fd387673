package schedule

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock.
// It is not safe for concurrent use; callbacks run inside Advance.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

// NewManual creates a virtual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{
		owner: m,
		at:    m.now + d,
		seq:   m.seq,
		fn:    fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	return len(m.timers)
}

// Advance moves the clock forward by d, running every timer that comes due in
// deadline order. Timers scheduled by callbacks fire too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		m.remove(next)
		next.fired = true
		next.fn()
	}
	m.now = target
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at != m.timers[j].at {
			return m.timers[i].at < m.timers[j].at
		}
		return m.timers[i].seq < m.timers[j].seq
	})
	if m.timers[0].at > limit {
		return nil
	}
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, mt := range m.timers {
		if mt == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	owner *Manual
	at    time.Duration
	seq   uint64
	fn    func()
	fired bool
}

func (t *manualTimer) Stop() bool {
	if t.fired {
		return false
	}
	return t.owner.remove(t)
}
