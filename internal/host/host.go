// Package host describes the editor surface an add-on talks to: views with
// cursor and line geometry, and a decoration API for transient overlays.
package host

import "errors"

// ErrUnknownDecoration is returned when a handle was never created or has been released.
var ErrUnknownDecoration = errors.New("unknown decoration")

// Position is a zero-based line and column. Columns count grapheme clusters.
type Position struct {
	Line int
	Col  int
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position
	End   Position
}

// EmptyRange returns the zero-width range at p.
func EmptyRange(p Position) Range {
	return Range{Start: p, End: p}
}

// IsEmpty reports whether the range has zero width.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// View is the currently focused editable document surface.
type View interface {
	// ID identifies the view.
	ID() string

	// DocumentID identifies the document shown in the view.
	DocumentID() string

	// Cursor returns the active end of the primary selection.
	Cursor() Position

	// LineEnd returns the position just past the last character of line.
	LineEnd(line int) Position
}

// DecorationHandle identifies a decoration created by a Host.
type DecorationHandle string

// AttachmentOptions describe content rendered next to a range.
type AttachmentOptions struct {
	// ContentIconPath is an image URI rendered as the attachment.
	ContentIconPath string

	// Width and Margin are CSS lengths.
	Width  string
	Margin string
}

// DecorationOptions describe how a decoration is rendered.
type DecorationOptions struct {
	// After renders content immediately after each decorated range.
	After *AttachmentOptions
}

// Host is the decoration API of the editor.
type Host interface {
	// CreateDecoration registers a decoration type and returns its handle.
	CreateDecoration(opts DecorationOptions) (DecorationHandle, error)

	// SetDecorations applies the decoration to ranges in view, replacing any
	// ranges previously set for the handle.
	SetDecorations(view View, handle DecorationHandle, ranges []Range) error

	// ReleaseDecoration removes the decoration from every view.
	// Releasing an unknown handle is a no-op.
	ReleaseDecoration(handle DecorationHandle)
}
