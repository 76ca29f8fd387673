package events

import (
	"github.com/dshills/confetti/internal/event/topic"
	"github.com/dshills/confetti/internal/host"
)

// Decoration event topics.
const (
	TopicDecorationShown    topic.Topic = "decoration.shown"
	TopicDecorationReleased topic.Topic = "decoration.released"
	TopicDecorationAll      topic.Topic = "decoration.*"
)

// DecorationShown is published after a glyph decoration was painted.
type DecorationShown struct {
	Handle host.DecorationHandle
	ViewID string
	Range  host.Range
	// GlyphID is the unique id the glyph was rendered with.
	GlyphID string
}

// DecorationReleased is published after a glyph decoration was released.
type DecorationReleased struct {
	Handle host.DecorationHandle
	// Expired is true when the release came from the display timer rather
	// than from a newer decoration replacing this one.
	Expired bool
}
