package glyph

import (
	"sort"
	"strings"
)

// StyleString joins CSS declarations as "k:v;k:v" with keys in sorted order.
func StyleString(styles map[string]string) string {
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+styles[k])
	}
	return strings.Join(parts, ";")
}

// FloatingMargin is a margin value that smuggles absolute positioning into
// hosts that only accept a margin, so a glyph taller than the line does not
// push the text below it down.
func FloatingMargin() string {
	return "0;" + StyleString(map[string]string{
		"top":       "-.25em",
		"position":  "absolute",
		"transform": "rotate(45deg)",
	})
}
