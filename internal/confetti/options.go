package confetti

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/glyph"
	"github.com/dshills/confetti/internal/logging"
)

// Default timings.
const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultDuration = 500 * time.Millisecond
	DefaultWidth    = "2em"
)

// Settings holds the user-tunable behavior of the controller.
type Settings struct {
	// Enabled turns refreshes on or off.
	Enabled bool

	// Debounce is how long document edits are coalesced before a refresh.
	Debounce time.Duration

	// Duration is how long a burst stays visible.
	Duration time.Duration

	// Width is the CSS width of the burst.
	Width string

	// Floating positions the burst absolutely so it never pushes text down.
	Floating bool
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		Enabled:  true,
		Debounce: DefaultDebounce,
		Duration: DefaultDuration,
		Width:    DefaultWidth,
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer replaces the glyph renderer.
func WithRenderer(render func(id string) string) Option {
	return func(c *Controller) {
		if render != nil {
			c.render = render
		}
	}
}

// WithIDGenerator replaces the generator of per-burst glyph ids.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBus publishes decoration.shown and decoration.released events on b.
func WithBus(b event.Bus) Option {
	return func(c *Controller) {
		c.bus = b
	}
}

func defaultRenderer(id string) string {
	return glyph.RenderGlyph(id)
}

func defaultIDGenerator() string {
	return uuid.NewString()
}
