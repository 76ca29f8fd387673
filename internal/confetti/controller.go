package confetti

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/event/events"
	"github.com/dshills/confetti/internal/glyph"
	"github.com/dshills/confetti/internal/host"
	"github.com/dshills/confetti/internal/logging"
	"github.com/dshills/confetti/internal/schedule"
)

// ErrClosed is returned by RequestRefresh after Close.
var ErrClosed = errors.New("confetti controller is closed")

// State is the coarse lifecycle state of the controller.
type State int

const (
	// StateIdle means nothing is pending and nothing is shown.
	StateIdle State = iota
	// StatePending means a debounced refresh is scheduled.
	StatePending
	// StateDisplaying means a burst is visible and no refresh is scheduled.
	StateDisplaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// Stats counts controller activity since creation.
type Stats struct {
	Requested uint64 // RequestRefresh calls
	Performed uint64 // PerformRefresh runs
	Skipped   uint64 // runs where the cursor was not in position
	Shown     uint64 // decorations displayed
	Released  uint64 // decorations released for any reason
	Expired   uint64 // decorations released by their display timer
	Failed    uint64 // runs the host rejected
}

// display is one burst on screen together with its own expiry timer.
type display struct {
	handle   host.DecorationHandle
	expiry   schedule.Timer
	released bool
}

// Controller owns the debounce timer and the decoration currently on screen.
// It is not safe for concurrent use.
type Controller struct {
	host      host.Host
	scheduler schedule.Scheduler
	render    func(id string) string
	newID     func() string
	logger    *logging.Logger
	bus       event.Bus

	settings Settings
	active   host.View
	debounce schedule.Timer
	current  *display
	live     map[*display]struct{}
	stats    Stats
	closed   bool

	// While refreshing, events are queued and sent once the burst state is
	// settled. Nested refreshes from event handlers are ignored.
	refreshing bool
	outbox     []any
}

// NewController creates a controller that paints through h and keeps time with s.
func NewController(h host.Host, s schedule.Scheduler, settings Settings, opts ...Option) *Controller {
	c := &Controller{
		host:      h,
		scheduler: s,
		render:    defaultRenderer,
		newID:     defaultIDGenerator,
		logger:    logging.Nop(),
		settings:  settings,
		live:      make(map[*display]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("confetti")
	return c
}

// SetActiveView records the focused view, or nil when none is focused.
// It never creates or releases a decoration.
func (c *Controller) SetActiveView(v host.View) {
	c.active = v
}

// ActiveView returns the focused view, or nil.
func (c *Controller) ActiveView() host.View {
	return c.active
}

// Settings returns the current settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// UpdateSettings replaces the settings. A pending refresh keeps its original
// deadline and visible bursts keep their expiry.
func (c *Controller) UpdateSettings(s Settings) {
	c.settings = s
	if !s.Enabled {
		c.cancelPending()
	}
}

// RequestRefresh cancels any pending refresh, then either schedules a new one
// after the debounce window or, when immediate is set, refreshes right away.
func (c *Controller) RequestRefresh(immediate bool) error {
	if c.closed {
		return ErrClosed
	}
	c.stats.Requested++
	c.cancelPending()

	if !c.settings.Enabled {
		return nil
	}
	if immediate {
		return c.PerformRefresh()
	}

	var t schedule.Timer
	t = c.scheduler.AfterFunc(c.settings.Debounce, func() {
		if c.debounce != t {
			return
		}
		c.debounce = nil
		if err := c.PerformRefresh(); err != nil {
			c.logger.Debug("refresh failed: %v", err)
		}
	})
	c.debounce = t
	return nil
}

// PerformRefresh shows a new burst at the cursor if the cursor sits exactly
// one column before the end of its line. Otherwise it does nothing.
func (c *Controller) PerformRefresh() error {
	if c.closed || c.refreshing {
		return nil
	}
	c.refreshing = true
	defer c.flush()
	c.stats.Performed++

	view := c.active
	if view == nil {
		c.stats.Skipped++
		return nil
	}
	cursor := view.Cursor()
	if cursor.Col != view.LineEnd(cursor.Line).Col-1 {
		c.stats.Skipped++
		return nil
	}

	if prev := c.current; prev != nil {
		c.release(prev, false)
	}

	glyphID := c.newID()
	handle, err := c.host.CreateDecoration(c.decorationOptions(glyphID))
	if err != nil {
		c.stats.Failed++
		return fmt.Errorf("create decoration: %w", err)
	}

	rng := host.EmptyRange(cursor)
	if err := c.host.SetDecorations(view, handle, []host.Range{rng}); err != nil {
		c.stats.Failed++
		c.host.ReleaseDecoration(handle)
		return fmt.Errorf("set decorations: %w", err)
	}

	d := &display{handle: handle}
	d.expiry = c.scheduler.AfterFunc(c.settings.Duration, func() {
		c.release(d, true)
	})
	c.current = d
	c.live[d] = struct{}{}
	c.stats.Shown++

	c.logger.Debug("burst shown at %d:%d", cursor.Line, cursor.Col)
	c.publish(event.NewEvent(events.TopicDecorationShown, events.DecorationShown{
		Handle:  handle,
		ViewID:  view.ID(),
		Range:   rng,
		GlyphID: glyphID,
	}, "confetti"))
	return nil
}

// Pending reports whether a debounced refresh is scheduled.
func (c *Controller) Pending() bool {
	return c.debounce != nil
}

// Visible reports whether a burst is currently on screen.
func (c *Controller) Visible() bool {
	return c.current != nil
}

// Current returns the handle of the visible burst.
func (c *Controller) Current() (host.DecorationHandle, bool) {
	if c.current == nil {
		return "", false
	}
	return c.current.handle, true
}

// State returns the lifecycle state. A pending refresh takes precedence over
// a visible burst.
func (c *Controller) State() State {
	switch {
	case c.debounce != nil:
		return StatePending
	case c.current != nil:
		return StateDisplaying
	default:
		return StateIdle
	}
}

// Stats returns the activity counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Close cancels the pending refresh and releases every burst still on screen.
// Subsequent calls are no-ops.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancelPending()
	for d := range c.live {
		c.release(d, false)
	}
	c.active = nil
}

func (c *Controller) cancelPending() {
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

func (c *Controller) decorationOptions(glyphID string) host.DecorationOptions {
	after := &host.AttachmentOptions{
		ContentIconPath: c.render(glyphID),
		Width:           c.settings.Width,
	}
	if c.settings.Floating {
		after.Margin = glyph.FloatingMargin()
	}
	return host.DecorationOptions{After: after}
}

// release tears down d exactly once. It only clears the current burst when d
// is still the current one, so an old timer never touches a newer burst.
func (c *Controller) release(d *display, expired bool) {
	if d.released {
		return
	}
	d.released = true
	if !expired && d.expiry != nil {
		d.expiry.Stop()
	}
	delete(c.live, d)
	if c.current == d {
		c.current = nil
	}

	c.host.ReleaseDecoration(d.handle)
	c.stats.Released++
	if expired {
		c.stats.Expired++
	}
	c.publish(event.NewEvent(events.TopicDecorationReleased, events.DecorationReleased{
		Handle:  d.handle,
		Expired: expired,
	}, "confetti"))
}

func (c *Controller) publish(ev any) {
	if c.bus == nil || !c.bus.IsRunning() {
		return
	}
	if c.refreshing {
		c.outbox = append(c.outbox, ev)
		return
	}
	c.send(ev)
}

// flush sends the events queued during a refresh. Handlers may queue more.
func (c *Controller) flush() {
	for len(c.outbox) > 0 {
		ev := c.outbox[0]
		c.outbox = c.outbox[1:]
		c.send(ev)
	}
	c.outbox = nil
	c.refreshing = false
}

func (c *Controller) send(ev any) {
	if err := c.bus.Publish(context.Background(), ev); err != nil {
		c.logger.Warn("publish failed: %v", err)
	}
}
