package editor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/confetti/internal/host"
)

// ChangeFunc is called after every edit with the document id and new version.
type ChangeFunc func(documentID string, version uint64)

// Buffer is an editable list of lines with a single cursor.
// Cursor columns count grapheme clusters.
type Buffer struct {
	id       string
	lines    []string
	cursor   host.Position
	version  uint64
	onChange ChangeFunc
}

// NewBuffer creates a buffer holding text. The cursor starts at the origin.
func NewBuffer(text string) *Buffer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Buffer{
		id:    uuid.NewString(),
		lines: strings.Split(text, "\n"),
	}
}

// ID returns the document id.
func (b *Buffer) ID() string { return b.id }

// Version increases with every edit.
func (b *Buffer) Version() uint64 { return b.version }

// OnChange sets the edit callback.
func (b *Buffer) OnChange(fn ChangeFunc) { b.onChange = fn }

// LineCount returns the number of lines. It is never zero.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// LineLength returns the number of grapheme clusters on line i.
func (b *Buffer) LineLength(i int) int {
	return graphemeCount(b.Line(i))
}

// Text returns the buffer contents joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() host.Position { return b.cursor }

// SetCursor moves the cursor, clamping it into the buffer.
func (b *Buffer) SetCursor(p host.Position) {
	b.cursor = b.clamp(p)
}

func (b *Buffer) clamp(p host.Position) host.Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := b.LineLength(p.Line); p.Col > n {
		p.Col = n
	}
	return p
}

// Insert inserts text at the cursor and moves the cursor after it.
// Newlines in text split the line.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	line := b.lines[b.cursor.Line]
	off := byteOffset(line, b.cursor.Col)
	head, tail := line[:off], line[off:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[b.cursor.Line] = head + text + tail
		b.cursor.Col += graphemeCount(text)
		b.changed()
		return
	}

	last := parts[len(parts)-1]
	newLines := make([]string, 0, len(parts))
	newLines = append(newLines, head+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	newLines = append(newLines, last+tail)

	b.lines = append(b.lines[:b.cursor.Line], append(newLines, b.lines[b.cursor.Line+1:]...)...)
	b.cursor.Line += len(parts) - 1
	b.cursor.Col = graphemeCount(last)
	b.changed()
}

// DeleteBackward removes the grapheme before the cursor, joining lines at
// column zero. It reports whether anything was deleted.
func (b *Buffer) DeleteBackward() bool {
	if b.cursor.Col == 0 {
		if b.cursor.Line == 0 {
			return false
		}
		prev := b.lines[b.cursor.Line-1]
		col := graphemeCount(prev)
		b.lines[b.cursor.Line-1] = prev + b.lines[b.cursor.Line]
		b.lines = append(b.lines[:b.cursor.Line], b.lines[b.cursor.Line+1:]...)
		b.cursor = host.Position{Line: b.cursor.Line - 1, Col: col}
		b.changed()
		return true
	}

	clusters := splitGraphemes(b.lines[b.cursor.Line])
	col := b.cursor.Col
	clusters = append(clusters[:col-1], clusters[col:]...)
	b.lines[b.cursor.Line] = joinGraphemes(clusters)
	b.cursor.Col--
	b.changed()
	return true
}

// DeleteForward removes the grapheme under the cursor, joining the next line
// at end of line. It reports whether anything was deleted.
func (b *Buffer) DeleteForward() bool {
	n := b.LineLength(b.cursor.Line)
	if b.cursor.Col >= n {
		if b.cursor.Line == len(b.lines)-1 {
			return false
		}
		b.lines[b.cursor.Line] += b.lines[b.cursor.Line+1]
		b.lines = append(b.lines[:b.cursor.Line+1], b.lines[b.cursor.Line+2:]...)
		b.changed()
		return true
	}

	clusters := splitGraphemes(b.lines[b.cursor.Line])
	col := b.cursor.Col
	clusters = append(clusters[:col], clusters[col+1:]...)
	b.lines[b.cursor.Line] = joinGraphemes(clusters)
	b.changed()
	return true
}

// Move shifts the cursor by the given line and column deltas.
// Horizontal moves wrap across line boundaries.
func (b *Buffer) Move(dLine, dCol int) {
	p := b.cursor
	if dLine != 0 {
		p.Line += dLine
		b.cursor = b.clamp(p)
		return
	}
	p.Col += dCol
	switch {
	case p.Col < 0 && p.Line > 0:
		p.Line--
		p.Col = b.LineLength(p.Line)
	case p.Col > b.LineLength(p.Line) && p.Line < len(b.lines)-1:
		p.Line++
		p.Col = 0
	}
	b.cursor = b.clamp(p)
}

// Home moves the cursor to the start of its line.
func (b *Buffer) Home() {
	b.cursor.Col = 0
}

// End moves the cursor past the last grapheme of its line.
func (b *Buffer) End() {
	b.cursor.Col = b.LineLength(b.cursor.Line)
}

func (b *Buffer) changed() {
	b.version++
	if b.onChange != nil {
		b.onChange(b.id, b.version)
	}
}
