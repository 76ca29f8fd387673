package editor

import (
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/dshills/confetti/internal/glyph"
	"github.com/dshills/confetti/internal/host"
)

// Screen defaults.
const (
	DefaultFrameCount = 10
	DefaultLifetime   = 500 * time.Millisecond
	defaultGlyphCells = 2
)

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithLifetime sets how long a burst animates. It should match the
// controller's display duration.
func WithLifetime(d time.Duration) ScreenOption {
	return func(s *Screen) {
		if d > 0 {
			s.lifetime = d
		}
	}
}

// WithBackground sets the colour bursts fade toward.
func WithBackground(c colorful.Color) ScreenOption {
	return func(s *Screen) {
		s.bg = c
	}
}

// Screen paints a view and its decorations onto a tcell screen.
type Screen struct {
	screen      tcell.Screen
	decorations *Decorations
	lifetime    time.Duration
	frameCount  int
	bg          colorful.Color
	frames      map[host.DecorationHandle][]glyph.Frame
	now         func() time.Time

	textStyle   tcell.Style
	statusStyle tcell.Style
}

// NewScreen creates a renderer for s. s must already be initialised.
func NewScreen(s tcell.Screen, decorations *Decorations, opts ...ScreenOption) *Screen {
	sc := &Screen{
		screen:      s,
		decorations: decorations,
		lifetime:    DefaultLifetime,
		frameCount:  DefaultFrameCount,
		bg:          colorful.Color{R: 0, G: 0, B: 0},
		frames:      make(map[host.DecorationHandle][]glyph.Frame),
		now:         time.Now,
		textStyle:   tcell.StyleDefault,
		statusStyle: tcell.StyleDefault.Reverse(true),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// SetLifetime updates the animation length after a config reload.
func (s *Screen) SetLifetime(d time.Duration) {
	if d > 0 {
		s.lifetime = d
	}
}

// Animating reports whether any decoration is live and needs redraws.
func (s *Screen) Animating() bool {
	return s.decorations.Len() > 0
}

// Draw renders v with a status line and shows the result.
// A nil view renders only the status line.
func (s *Screen) Draw(v *View, status string) {
	s.screen.Clear()
	width, height := s.screen.Size()
	textRows := height - 1

	s.forgetReleased()

	if v != nil && textRows > 0 {
		top := v.ScrollTo(textRows)
		buf := v.Buffer()
		cursor := buf.Cursor()
		for row := 0; row < textRows; row++ {
			line := top + row
			if line >= buf.LineCount() {
				break
			}
			xs := s.drawLine(row, width, buf.Line(line))
			s.drawDecorations(v.ID(), line, row, width, xs)
			if line == cursor.Line {
				s.screen.ShowCursor(xAt(xs, cursor.Col), row)
			}
		}
	} else {
		s.screen.HideCursor()
	}

	if height > 0 {
		s.drawStatus(height-1, width, status)
	}
	s.screen.Show()
}

// drawLine draws text on row and returns the x of each grapheme column,
// with one extra entry for end of line.
func (s *Screen) drawLine(row, width int, text string) []int {
	xs := make([]int, 0, len(text)+1)
	x := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		xs = append(xs, x)
		runes := g.Runes()
		w := g.Width()
		if runes[0] == '\t' {
			runes = []rune{' '}
			w = 4 - x%4
		}
		if w < 1 {
			w = 1
		}
		if x < width {
			s.screen.SetContent(x, row, runes[0], runes[1:], s.textStyle)
		}
		x += w
	}
	return append(xs, x)
}

// drawDecorations paints the current frame of each burst on line after its range.
func (s *Screen) drawDecorations(viewID string, line, row, width int, xs []int) {
	for _, p := range s.decorations.At(viewID, line) {
		after := p.Decoration.Options.After
		if after == nil {
			continue
		}
		frame := s.frameFor(p.Decoration, cellWidth(after.Width))
		x := xAt(xs, p.Range.End.Col+1)
		for _, c := range frame {
			if x >= width {
				break
			}
			if c.Rune != ' ' {
				s.screen.SetContent(x, row, c.Rune, nil, s.textStyle.Foreground(toTcell(c.Color)))
			}
			x++
		}
	}
}

func (s *Screen) frameFor(d *Decoration, cells int) glyph.Frame {
	frames, ok := s.frames[d.Handle]
	if !ok {
		frames = glyph.Frames(string(d.Handle), s.frameCount, cells, s.bg)
		s.frames[d.Handle] = frames
	}
	if len(frames) == 0 {
		return nil
	}
	elapsed := s.now().Sub(d.Created)
	i := int(int64(elapsed) * int64(len(frames)) / int64(s.lifetime))
	if i < 0 {
		i = 0
	}
	if i >= len(frames) {
		i = len(frames) - 1
	}
	return frames[i]
}

// forgetReleased drops cached frames of released decorations.
func (s *Screen) forgetReleased() {
	for h := range s.frames {
		if _, ok := s.decorations.Get(h); !ok {
			delete(s.frames, h)
		}
	}
}

func (s *Screen) drawStatus(row, width int, status string) {
	x := 0
	g := uniseg.NewGraphemes(status)
	for g.Next() && x < width {
		runes := g.Runes()
		s.screen.SetContent(x, row, runes[0], runes[1:], s.statusStyle)
		x += max(g.Width(), 1)
	}
	for ; x < width; x++ {
		s.screen.SetContent(x, row, ' ', nil, s.statusStyle)
	}
}

// xAt returns the screen x of column col.
func xAt(xs []int, col int) int {
	if col < 0 {
		return 0
	}
	if col >= len(xs) {
		return xs[len(xs)-1]
	}
	return xs[col]
}

// cellWidth converts a CSS length to terminal cells. One em is one cell and
// eight pixels are one cell. Unparseable widths use the default.
func cellWidth(css string) int {
	css = strings.TrimSpace(css)
	unit := 1.0
	switch {
	case strings.HasSuffix(css, "em"):
		css = strings.TrimSuffix(css, "em")
	case strings.HasSuffix(css, "px"):
		css = strings.TrimSuffix(css, "px")
		unit = 1.0 / 8
	case strings.HasSuffix(css, "ch"):
		css = strings.TrimSuffix(css, "ch")
	}
	f, err := strconv.ParseFloat(css, 64)
	if err != nil || f <= 0 {
		return defaultGlyphCells
	}
	n := int(f*unit + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
