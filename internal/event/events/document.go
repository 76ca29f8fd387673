package events

import "github.com/dshills/confetti/internal/event/topic"

// Document event topics.
const (
	// TopicDocumentChanged is published after any edit to a document.
	TopicDocumentChanged topic.Topic = "document.content.changed"
)

// DocumentChanged is published after a document's text changed.
type DocumentChanged struct {
	// DocumentID identifies the edited document.
	DocumentID string

	// Version is the document version after the edit.
	Version uint64
}
