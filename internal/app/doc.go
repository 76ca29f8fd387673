// Package app wires confetti into the demo editor and runs the terminal
// event loop.
//
// Activation creates the event bus, the editor, the confetti controller and
// its listener, then optionally a Lua script runner and a configuration
// watcher. Everything that touches the controller or the editor runs on the
// loop goroutine; timers and the watcher post work onto it.
package app
