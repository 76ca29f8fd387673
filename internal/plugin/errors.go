package plugin

import "errors"

// Errors returned by the plugin runner.
var (
	// ErrAlreadyLoaded is returned when a second script is loaded.
	ErrAlreadyLoaded = errors.New("script already loaded")

	// ErrClosed is returned when the runner has been closed.
	ErrClosed = errors.New("plugin runner closed")
)
