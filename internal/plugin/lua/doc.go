// Package lua hosts user scripts on a sandboxed gopher-lua state.
//
// Only the base, table, string, math and coroutine libraries are opened.
// Globals that load code at runtime are removed, and print is redirected to
// a Go callback so script output never reaches the terminal.
//
// A State serialises its own calls, but Lua callbacks invoked from event
// handlers must run on the goroutine that owns the state.
package lua
