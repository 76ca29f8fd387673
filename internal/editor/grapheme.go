package editor

import (
	"strings"

	"github.com/rivo/uniseg"
)

// splitGraphemes returns the grapheme clusters of text.
func splitGraphemes(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// graphemeCount returns the number of grapheme clusters in text.
func graphemeCount(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// byteOffset returns the byte offset of grapheme col in text, clamped to len(text).
func byteOffset(text string, col int) int {
	if col <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	i := 0
	for g.Next() {
		if i == col {
			start, _ := g.Positions()
			return start
		}
		i++
	}
	return len(text)
}

// displayWidth returns the number of terminal cells text occupies.
func displayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// joinGraphemes concatenates clusters.
func joinGraphemes(clusters []string) string {
	return strings.Join(clusters, "")
}
