package editor

import (
	"github.com/google/uuid"

	"github.com/dshills/confetti/internal/host"
)

// View shows a buffer and implements host.View.
type View struct {
	id     string
	buf    *Buffer
	scroll int // first visible line
}

// NewView creates a view over buf.
func NewView(buf *Buffer) *View {
	return &View{id: uuid.NewString(), buf: buf}
}

// ID returns the view id.
func (v *View) ID() string { return v.id }

// DocumentID returns the id of the buffer shown.
func (v *View) DocumentID() string { return v.buf.ID() }

// Cursor returns the buffer cursor.
func (v *View) Cursor() host.Position { return v.buf.Cursor() }

// LineEnd returns the position just past the last grapheme of line.
func (v *View) LineEnd(line int) host.Position {
	return host.Position{Line: line, Col: v.buf.LineLength(line)}
}

// Buffer returns the underlying buffer.
func (v *View) Buffer() *Buffer { return v.buf }

// ScrollTo adjusts the first visible line so the cursor fits in height rows.
func (v *View) ScrollTo(height int) int {
	if height <= 0 {
		return v.scroll
	}
	line := v.buf.Cursor().Line
	if line < v.scroll {
		v.scroll = line
	}
	if line >= v.scroll+height {
		v.scroll = line - height + 1
	}
	return v.scroll
}

var _ host.View = (*View)(nil)
