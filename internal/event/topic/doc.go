// Package topic provides dot-separated event topics and wildcard matching.
//
// Topics name what happened, most general segment first:
//
//	view.active.changed
//	document.content.changed
//	decoration.shown
//
// Subscription patterns may use two wildcards:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// For example "decoration.*" matches decoration.shown and decoration.released,
// and "**" matches every topic.
package topic
