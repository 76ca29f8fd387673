// Package glyph renders the confetti burst shown after the cursor.
//
// RenderGlyph produces a self-contained animated SVG as a data URI for hosts
// that can draw images in decorations. Frames produces the same burst as a
// short sequence of coloured terminal cells for character-cell hosts.
//
// Both are pure: the same id always yields the same output, and different ids
// yield bursts whose particles and timing differ, so two bursts on screen at
// once never animate in lockstep.
package glyph
