// Package api provides the Lua modules exposed to confetti scripts.
//
// The confetti module is installed as the global table "confetti":
//
//	confetti.refresh([immediate])  -> true | nil, err
//	confetti.pending()             -> bool
//	confetti.visible()             -> bool
//	confetti.stats()               -> table
//	confetti.glyph(id)             -> data URI
//	confetti.on_shown(fn)          -> subscription id
//	confetti.on_released(fn)       -> subscription id
//	confetti.off(id)               -> bool
//
// Handlers are called synchronously from the event bus, which publishes on
// the editor's UI goroutine. That goroutine also owns the Lua state.
package api
