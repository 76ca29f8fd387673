package glyph

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Cell is one coloured character of a terminal frame.
type Cell struct {
	Rune  rune
	Color colorful.Color
}

// Frame is a row of cells drawn left to right after the cursor.
type Frame []Cell

var burstRunes = [][]rune{
	{'·'},
	{'*', '·'},
	{'✦', '*', '·'},
	{'✧', '·', '˚'},
	{'·', ' ', '˚'},
}

// Palette returns n distinct, saturated colours for a burst.
// The hue rotation starts at a point derived from id.
func Palette(id string, n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed(id)))
	base := rng.Float64() * 360
	out := make([]colorful.Color, n)
	for i := range out {
		h := base + float64(i)*360/float64(n)
		for h >= 360 {
			h -= 360
		}
		out[i] = colorful.Hcl(h, 0.75, 0.72).Clamped()
	}
	return out
}

// Frames returns count frames of at most width cells that animate a burst.
// Later frames fade toward bg.
func Frames(id string, count, width int, bg colorful.Color) []Frame {
	if count <= 0 || width <= 0 {
		return nil
	}
	palette := Palette(id, width*len(burstRunes))
	rng := rand.New(rand.NewSource(seed(id)))

	frames := make([]Frame, count)
	for i := range frames {
		stage := i * len(burstRunes) / count
		runes := burstRunes[stage]
		fade := 0.0
		if count > 1 {
			fade = float64(i) / float64(count-1) * 0.8
		}

		n := len(runes)
		if n > width {
			n = width
		}
		frame := make(Frame, n)
		for j := 0; j < n; j++ {
			c := palette[(stage*width+j+rng.Intn(len(palette)))%len(palette)]
			frame[j] = Cell{
				Rune:  runes[j],
				Color: c.BlendLab(bg, fade).Clamped(),
			}
		}
		frames[i] = frame
	}
	return frames
}
