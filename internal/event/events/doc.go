// Package events defines the topics and payloads exchanged between the editor
// host and the confetti add-on.
//
// Topic hierarchy:
//
//	view.active.changed        - focus moved to another view (or none)
//	document.content.changed   - a document's text changed
//	decoration.shown           - a glyph decoration was painted
//	decoration.released        - a glyph decoration was torn down
//	config.reloaded            - configuration was re-read from disk
package events
