package glyph

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"regexp"
	"strings"
)

// DataURIPrefix starts every URI returned by RenderGlyph.
const DataURIPrefix = "data:image/svg+xml,"

// ParticleCount is the number of pieces in one burst.
const ParticleCount = 12

var (
	betweenTags   = regexp.MustCompile(`>\s+<`)
	runsOfSpace   = regexp.MustCompile(`\s{2,}`)
	unsafeSymbols = regexp.MustCompile("[\r\n%#<>?\\[\\\\\\]^`{|}]")
)

// RenderGlyph returns a data URI for an animated confetti burst.
// The id is embedded in element ids so repeated bursts stay independent.
func RenderGlyph(id string) string {
	return DataURIPrefix + EncodeSVG(buildSVG(id))
}

// EncodeSVG makes SVG markup safe for a data URI while keeping it readable:
// double quotes become single quotes, whitespace is collapsed and only the
// characters that break URIs are percent-encoded.
func EncodeSVG(data string) string {
	data = strings.ReplaceAll(data, `"`, `'`)
	data = betweenTags.ReplaceAllString(data, "><")
	data = runsOfSpace.ReplaceAllString(data, " ")
	return unsafeSymbols.ReplaceAllStringFunc(data, func(s string) string {
		var b strings.Builder
		for i := 0; i < len(s); i++ {
			fmt.Fprintf(&b, "%%%02X", s[i])
		}
		return b.String()
	})
}

func buildSVG(id string) string {
	rng := rand.New(rand.NewSource(seed(id)))
	palette := Palette(id, ParticleCount)
	safeID := sanitizeID(id)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg version="1.1" id="confetti-%s" xmlns="http://www.w3.org/2000/svg" viewBox="-50 -50 100 100">`, safeID)
	b.WriteString("\n")
	for i := 0; i < ParticleCount; i++ {
		angle := (float64(i) + rng.Float64()*0.6) * 2 * math.Pi / ParticleCount
		dist := 28 + rng.Float64()*18
		dx := math.Cos(angle) * dist
		dy := math.Sin(angle)*dist + 10 // pieces fall a little
		spin := rng.Intn(360)
		dur := 0.35 + rng.Float64()*0.15
		fmt.Fprintf(&b,
			`  <rect id="p%d-%s" x="-3" y="-1.5" width="6" height="3" fill="%s" transform="rotate(%d)">`+"\n"+
				`    <animateTransform attributeName="transform" type="translate" additive="sum" from="0 0" to="%.1f %.1f" dur="%.2fs" fill="freeze"/>`+"\n"+
				`    <animate attributeName="opacity" from="1" to="0" dur="%.2fs" fill="freeze"/>`+"\n"+
				`  </rect>`+"\n",
			i, safeID, palette[i].Hex(), spin, dx, dy, dur, dur)
	}
	b.WriteString("</svg>")
	return b.String()
}

func seed(id string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return int64(h.Sum64())
}

func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
