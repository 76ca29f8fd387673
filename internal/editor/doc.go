// Package editor is a small terminal editor used to host confetti.
//
// It provides grapheme-aware line buffers, views implementing host.View,
// a decoration store implementing host.Host and a tcell renderer that
// animates decorations as coloured glyph frames after the cursor.
//
// The editor is driven from a single UI goroutine and none of its types
// are safe for concurrent use.
package editor
