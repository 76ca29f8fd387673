package events

import (
	"github.com/dshills/confetti/internal/event/topic"
	"github.com/dshills/confetti/internal/host"
)

// View event topics.
const (
	// TopicViewActiveChanged is published when focus moves to another view.
	TopicViewActiveChanged topic.Topic = "view.active.changed"
)

// ViewActiveChanged carries the newly focused view. View is nil when no
// editable view has focus.
type ViewActiveChanged struct {
	View host.View
}
