package events

import (
	"time"

	"github.com/dshills/confetti/internal/event/topic"
)

// Config event topics.
const (
	TopicConfigReloaded topic.Topic = "config.reloaded"
)

// ConfigReloaded is published after the configuration file was re-read.
type ConfigReloaded struct {
	Path     string
	Enabled  bool
	Debounce time.Duration
	Duration time.Duration
}
